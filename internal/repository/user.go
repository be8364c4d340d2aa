package repository

import (
	"context"
	"time"

	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/model"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"gorm.io/gorm"
)

// Hasher is the pre-write step applied to every password before it is stored.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

type UserRepository struct {
	db     *gorm.DB
	hasher Hasher
}

func NewUserRepository(db *gorm.DB, hasher Hasher) *UserRepository {
	return &UserRepository{db: db, hasher: hasher}
}

// Create hashes user.Password and inserts the row. Uniqueness of username
// and email is left to the unique indexes, so concurrent duplicates cannot
// both succeed.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateUser")

	logger.DebugWithContext(ctx, "Creating new user").
		String("username", user.Username).
		String("email", user.Email).
		Log()

	hashed, err := r.hasher.Hash(user.Password)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			Err(err).
			Log()
		return err
	}
	user.Password = hashed

	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	duration := time.Since(start)

	if result.Error != nil {
		err := translateWriteError(result.Error)
		logger.WarnWithContext(ctx, "Failed to create user").
			String("email", user.Email).
			Duration(duration).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "User created successfully").
		Uint("user_id", user.ID).
		Duration(duration).
		Log()

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetUserByEmail")

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		err := translateReadError(result.Error, apperrors.ErrUserNotFound)
		logger.DebugWithContext(ctx, "User lookup by email failed").
			String("email", email).
			Duration(duration).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "User retrieved successfully by email").
		Uint("user_id", user.ID).
		Duration(duration).
		Log()

	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetUserByID")

	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		err = translateReadError(err, apperrors.ErrUserNotFound)
		logger.DebugWithContext(ctx, "User lookup by id failed").
			Uint("user_id", id).
			Err(err).
			Log()
		return nil, err
	}
	return &user, nil
}

// UpdatePassword is the only path that changes a stored password. The
// plaintext goes through the same pre-write hash as Create.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, plaintext string) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UpdatePassword")

	hashed, err := r.hasher.Hash(plaintext)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", hashed)
	if result.Error != nil {
		err := translateWriteError(result.Error)
		logger.ErrorWithContext(ctx, "Failed to update password").
			Uint("user_id", id).
			Err(err).
			Log()
		return err
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}

	logger.InfoWithContext(ctx, "Password updated").
		Uint("user_id", id).
		Log()
	return nil
}
