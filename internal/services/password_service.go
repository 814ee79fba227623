package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
)

// passwordResetService manages the persisted, expiring reset token store.
type passwordResetService struct {
	db       *gorm.DB
	users    UserServicer
	tokenTTL time.Duration
}

// NewPasswordResetService creates a new PasswordResetServicer.
func NewPasswordResetService(db *gorm.DB, users UserServicer, tokenTTL time.Duration) PasswordResetServicer {
	return &passwordResetService{db: db, users: users, tokenTTL: tokenTTL}
}

// hashToken returns the SHA-256 hex digest of a token string. Only the hash
// touches the database.
func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// RequestReset issues a single-use reset token for the account with the
// given email. Tokens previously issued for the account are invalidated.
// An unknown email yields an empty token and no error so the caller's
// response cannot reveal which accounts exist.
func (s *passwordResetService) RequestReset(email string, now time.Time) (string, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrUserNotFound.Code {
			return "", nil
		}
		return "", err
	}

	token := uuid.NewString()
	record := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hashToken(token),
		ExpiresAt: now.Add(s.tokenTTL),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return token, nil
}

// ResetPassword consumes a reset token and sets the new password. Expired
// tokens are deleted on sight; used tokens never match because consumption
// deletes them.
func (s *passwordResetService) ResetPassword(token, newPassword string, now time.Time) error {
	if token == "" || newPassword == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Token and new password are required")
	}

	var record models.PasswordResetToken
	if err := s.db.Where("token_hash = ?", hashToken(token)).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrResetTokenInvalid
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if now.After(record.ExpiresAt) {
		if err := s.db.Delete(&record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return apperrors.ErrResetTokenExpired
	}

	if err := s.users.UpdatePassword(record.UserID, newPassword); err != nil {
		return err
	}

	if err := s.db.Delete(&record).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
