package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/diary-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user. A taken username surfaces as gorm.ErrDuplicatedKey.
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// resolveUsernames maps usernames to users, preserving input order.
// The first name that does not resolve is reported as *UsernameNotFoundError.
// Names match the way the store compared them: exactly, or case-insensitively
// when the column collation is (MySQL's default).
func resolveUsernames(tx *gorm.DB, usernames []string) ([]models.User, error) {
	if len(usernames) == 0 {
		return []models.User{}, nil
	}

	var found []models.User
	if err := tx.Where("username IN ?", usernames).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve usernames: %w", err)
	}

	byName := make(map[string]models.User, len(found))
	byFolded := make(map[string]models.User, len(found))
	for _, u := range found {
		byName[u.Username] = u
		byFolded[strings.ToLower(u.Username)] = u
	}

	users := make([]models.User, 0, len(usernames))
	for _, name := range usernames {
		u, ok := byName[name]
		if !ok {
			u, ok = byFolded[strings.ToLower(name)]
		}
		if !ok {
			return nil, &UsernameNotFoundError{Username: name}
		}
		users = append(users, u)
	}
	return users, nil
}

// resolveInvitees resolves usernames and drops the owner and repeated users,
// which differently-cased names can produce on a case-insensitive store.
func resolveInvitees(tx *gorm.DB, usernames []string, ownerID uint64) ([]models.User, error) {
	users, err := resolveUsernames(tx, usernames)
	if err != nil {
		return nil, err
	}

	seen := map[uint64]struct{}{ownerID: {}}
	invitees := make([]models.User, 0, len(users))
	for _, u := range users {
		if _, dup := seen[u.ID]; dup {
			continue
		}
		seen[u.ID] = struct{}{}
		invitees = append(invitees, u)
	}
	if len(invitees) == 0 {
		return nil, ErrNoInvitees
	}
	return invitees, nil
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
