package service

import "errors"

// Sentinel errors handlers map to HTTP statuses.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid refresh token")
	ErrAccountPending     = errors.New("account pending approval")
	ErrAccountInactive    = errors.New("account not active")

	ErrPeptideNotFound = errors.New("peptide not found")
	ErrPeptideExists   = errors.New("peptide already exists")
	ErrInvalidSequence = errors.New("invalid peptide sequence")
	ErrInvalidCategory = errors.New("invalid peptide category")

	ErrExperienceNotFound = errors.New("experience not found")
	ErrEmptyOutcomes      = errors.New("outcomes must contain at least one entry")
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrInvalidRoute       = errors.New("invalid route of administration")
	ErrInvalidTimeline    = errors.New("invalid timeline")
	ErrNotOwner           = errors.New("you can only modify your own data")

	ErrVoteNotFound    = errors.New("vote not found")
	ErrInvalidVoteKind = errors.New("invalid vote type")
)
