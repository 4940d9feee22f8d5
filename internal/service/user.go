package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/models"
	"github.com/peptitrace/backend/internal/types"
)

// UserService is a stateless facade over user records.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// Update applies a self-service profile update. Only demographics and
// preferences are touched.
func (s *UserService) Update(ctx context.Context, id string, req types.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Demographics != nil {
		user.Demographics = *req.Demographics
	}
	if req.Preferences != nil {
		user.Preferences = *req.Preferences
	}
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete hard-deletes a user record. Admin only at the route layer.
func (s *UserService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// PendingUsers lists registrations awaiting moderation, newest first.
func (s *UserService) PendingUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("status = ?", models.StatusPending).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

// Approve moves a pending registration to approved and stamps the decision.
func (s *UserService) Approve(ctx context.Context, id string) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	updates := map[string]interface{}{
		"status":        models.StatusApproved,
		"approval_date": now,
	}
	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	user.Status = models.StatusApproved
	user.ApprovalDate = &now
	return user, nil
}

// Reject marks a registration rejected with the moderator's notes.
func (s *UserService) Reject(ctx context.Context, id, notes string) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"status":          models.StatusRejected,
		"moderator_notes": notes,
	}
	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	user.Status = models.StatusRejected
	user.ModeratorNotes = notes
	return user, nil
}

// UserAnalytics is the moderation overview of the account base.
type UserAnalytics struct {
	TotalUsers    int64            `json:"totalUsers"`
	ByStatus      map[string]int64 `json:"byStatus"`
	ByRole        map[string]int64 `json:"byRole"`
	RecentSignups int64            `json:"recentSignups"`
}

// Analytics summarizes accounts by status and role, plus signups over the
// trailing 30 days.
func (s *UserService) Analytics(ctx context.Context) (*UserAnalytics, error) {
	out := &UserAnalytics{
		ByStatus: map[string]int64{},
		ByRole:   map[string]int64{},
	}
	db := s.db.WithContext(ctx).Model(&models.User{})

	if err := db.Count(&out.TotalUsers).Error; err != nil {
		return nil, err
	}
	for _, status := range []string{models.StatusPending, models.StatusApproved, models.StatusRejected} {
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("status = ?", status).Count(&n).Error; err != nil {
			return nil, err
		}
		out.ByStatus[status] = n
	}
	for _, role := range []string{models.RoleUser, models.RoleModerator, models.RoleAdmin} {
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", role).Count(&n).Error; err != nil {
			return nil, err
		}
		out.ByRole[role] = n
	}
	monthAgo := time.Now().AddDate(0, 0, -30)
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("created_at >= ?", monthAgo).Count(&out.RecentSignups).Error; err != nil {
		return nil, err
	}
	return out, nil
}
