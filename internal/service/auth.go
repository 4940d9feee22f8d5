package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/models"
	"github.com/peptitrace/backend/internal/types"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// AuthService handles registration, login and token issuance. Access and
// refresh tokens are signed with distinct secrets.
type AuthService struct {
	db            *gorm.DB
	accessSecret  string
	refreshSecret string
}

func NewAuthService(db *gorm.DB, accessSecret, refreshSecret string) *AuthService {
	return &AuthService{
		db:            db,
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
	}
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// Register creates a new pending account. The username is derived from the
// email's local part with a random suffix to keep it unique.
func (s *AuthService) Register(ctx context.Context, email string, password Plaintext) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     deriveUsername(email),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Status:       models.StatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials, rotates the refresh token and stamps the
// last-login time.
func (s *AuthService) Login(ctx context.Context, email string, password Plaintext) (*LoginResult, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	hash, err := ParseHash(user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if err := hash.Compare(password); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.issueToken(&user, s.accessSecret, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.issueToken(&user, s.refreshSecret, refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"refresh_token": refreshToken,
		"last_login_at": now,
	}
	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	user.RefreshToken = refreshToken
	user.LastLoginAt = &now

	return &LoginResult{User: &user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh verifies a refresh token, re-checks the account status and rotates
// the token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.parseToken(refreshToken, s.refreshSecret)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", claims.UserID).Error; err != nil {
		return "", "", ErrAccountInactive
	}
	if !user.IsApproved() {
		if user.Status == models.StatusPending {
			return "", "", ErrAccountPending
		}
		return "", "", ErrAccountInactive
	}

	newAccess, err := s.issueToken(&user, s.accessSecret, accessTokenTTL)
	if err != nil {
		return "", "", err
	}
	newRefresh, err := s.issueToken(&user, s.refreshSecret, refreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("refresh_token", newRefresh).Error; err != nil {
		return "", "", err
	}
	return newAccess, newRefresh, nil
}

// ValidateAccessToken verifies signature and expiry against the access secret.
func (s *AuthService) ValidateAccessToken(token string) (*types.TokenClaims, error) {
	return s.parseToken(token, s.accessSecret)
}

func (s *AuthService) issueToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: user.ID,
		Email:  user.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *AuthService) parseToken(tokenString, secret string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func deriveUsername(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return local + "_" + suffix
}
