package api

import (
	"context"
	"strings"
	"sync"
	"time"

	"accounts/internal/entity"

	"gorm.io/gorm"
)

// fakeRepo is an in-memory Repository for handler tests. It mirrors the
// store's observable behaviour: unique email, sentinel errors, partial
// updates keyed by column name.
type fakeRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*entity.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uint]*entity.User)}
}

func (f *fakeRepo) CreateUser(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}

	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeRepo) UpdateUser(_ context.Context, id uint, updates entity.UserUpdates) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	for column, value := range updates {
		switch column {
		case "name":
			user.Name = value.(string)
		case "email":
			email := value.(string)
			for _, existing := range f.users {
				if existing.ID != id && strings.EqualFold(existing.Email, email) {
					return gorm.ErrDuplicatedKey
				}
			}
			user.Email = email
		case "role":
			switch v := value.(type) {
			case entity.Role:
				user.Role = v
			case string:
				user.Role = entity.Role(v)
			}
		case "is_active":
			user.IsActive = value.(bool)
		case "password_hash":
			user.PasswordHash = value.(string)
		case "password_changed_at":
			t := value.(time.Time)
			user.PasswordChangedAt = &t
		case "password_reset_token_hash":
			if value == nil {
				user.PasswordResetTokenHash = nil
			} else {
				s := value.(string)
				user.PasswordResetTokenHash = &s
			}
		case "password_reset_expires_at":
			if value == nil {
				user.PasswordResetExpiresAt = nil
			} else {
				t := value.(time.Time)
				user.PasswordResetExpiresAt = &t
			}
		}
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uint) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeRepo) GetUserByResetTokenHash(_ context.Context, hash string, now time.Time) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.PasswordResetTokenHash != nil && *user.PasswordResetTokenHash == hash &&
			user.PasswordResetExpiresAt != nil && user.PasswordResetExpiresAt.After(now) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListUsers(_ context.Context, _ *entity.UserQuery) ([]entity.User, *entity.Meta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users := make([]entity.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, *user)
	}
	meta := &entity.Meta{Total: int64(len(users)), Page: 1, PageSize: 100}
	return users, meta, nil
}

func (f *fakeRepo) DeleteUser(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) CountUsers(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}
