package model

import (
	"accounts/internal/entity"
	"context"
	"time"
)

// Repository defines the persistence operations used by the HTTP layer.
type Repository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id uint) (*entity.User, error)
	// GetUserByResetTokenHash finds the user holding an unexpired reset token
	// with the given digest.
	GetUserByResetTokenHash(ctx context.Context, hash string, now time.Time) (*entity.User, error)
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.User, *entity.Meta, error)
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)
}
