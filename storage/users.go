package storage

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fintrack/models"
)

// UserStore reads and provisions user accounts. The HTTP surface only calls
// ByUsername; CreateUser exists for the ops CLIs.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser hashes the password with bcrypt and inserts the user. Plaintext
// is never stored.
func (s *UserStore) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username required")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password too short (min 6)")
	}
	var existing models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("user already exists")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{Username: username, HashedPassword: hashed}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race after the initial check
			return nil, fmt.Errorf("user already exists")
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies a username/password pair. Used by cmd/issue_token;
// the API itself trusts the bearer token and never sees passwords.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.ByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
