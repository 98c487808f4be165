package admins

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"scheduler-backend/internal/shared/auth"
)

// ErrBadCredentials covers unknown usernames and wrong passwords alike so
// the login response does not reveal which one failed.
var ErrBadCredentials = errors.New("invalid username or password")

// Service holds admin account logic.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates an admin account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, username, password, name string) (Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 8 {
		return Admin{}, errors.New("username required and password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Admin{}, err
	}

	admin := Admin{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, admin); err != nil {
		return Admin{}, err
	}
	return admin, nil
}

// Login verifies credentials and issues an admin token.
func (s *Service) Login(ctx context.Context, username, password string) (string, Admin, error) {
	admin, err := s.Repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", Admin{}, ErrBadCredentials
		}
		return "", Admin{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", Admin{}, ErrBadCredentials
	}

	token, err := auth.SignJWT(auth.Claims{
		Sub:  "admin:" + admin.ID,
		Name: admin.Name,
		Role: auth.RoleAdmin,
	})
	if err != nil {
		return "", Admin{}, err
	}
	return token, admin, nil
}
