package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wayfarer/internal/model"
)

// ErrDuplicateEmail is returned when creating a user whose email is already
// registered. Concurrent registrations of the same email are resolved by
// the unique index; whichever write commits first wins.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines user persistence operations.
// Callers pass emails already normalized (trimmed, lowercased).
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByResetTokenHash finds the user holding the given reset-token
	// digest with an expiry strictly after now.
	FindByResetTokenHash(ctx context.Context, digest string, now time.Time) (*model.User, error)
	ClearResetToken(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Update persists all mutated fields of the user in a single write.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByResetTokenHash(ctx context.Context, digest string, now time.Time) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("reset_token_hash = ? AND reset_token_expiry > ?", digest, now).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ClearResetToken nulls both reset-token columns for the user.
func (r *userRepository) ClearResetToken(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Model(user).
		Updates(map[string]interface{}{
			"reset_token_hash":   nil,
			"reset_token_expiry": nil,
		}).Error
	if err != nil {
		return err
	}
	user.ClearResetToken()
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
