package auth

import (
	"context"
	"time"

	"github.com/sahilchouksey/todo-manager/model"
	"gorm.io/gorm"
)

// RevocationService handles session token revocation on logout
type RevocationService struct {
	db *gorm.DB
}

// NewRevocationService creates a new revocation service
func NewRevocationService(db *gorm.DB) *RevocationService {
	return &RevocationService{db: db}
}

// RevokeSession records a session JTI as revoked until the token expires
func (s *RevocationService) RevokeSession(ctx context.Context, jti string, userID uint, expiresAt time.Time, reason string) error {
	entry := model.RevokedSession{
		JTI:       jti,
		UserID:    userID,
		Reason:    reason,
		ExpiresAt: expiresAt,
	}

	return s.db.WithContext(ctx).Create(&entry).Error
}

// IsSessionRevoked checks whether a session JTI has been revoked
func (s *RevocationService) IsSessionRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.RevokedSession{}).
		Where("jti = ? AND expires_at > ?", jti, time.Now()).
		Count(&count).
		Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// RevokeAllUserSessions increments the user's token version so every
// outstanding session token stops validating
func (s *RevocationService) RevokeAllUserSessions(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + ?", 1)).
		Error
}

// CleanupExpiredSessions removes revocation rows whose tokens have expired
func (s *RevocationService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.RevokedSession{})
	return result.RowsAffected, result.Error
}
