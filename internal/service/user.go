package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"lexapi/internal/clock"
	"lexapi/internal/config"
	"lexapi/internal/model"
	"lexapi/internal/repository"
)

// UserInput carries staff-account fields. On update, empty Username,
// Password and Name keep the current values; Image is always overwritten.
type UserInput struct {
	Username string
	Password string
	Name     string
	Image    string
}

// AuthResult is the outcome of a successful authentication.
type AuthResult struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

// UserService manages staff accounts and token issuance. Tokens are
// signed with the server-side secret from config; per-user material is
// never used as signing key.
type UserService interface {
	Create(ctx context.Context, in UserInput) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*AuthResult, error)
	Update(ctx context.Context, id int64, in UserInput) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type userService struct {
	users repository.UserRepository
	cfg   config.AuthConfig
	clk   clock.Clock
}

// NewUserService constructs a UserService.
func NewUserService(users repository.UserRepository, cfg config.AuthConfig, clk clock.Clock) UserService {
	return &userService{users: users, cfg: cfg, clk: clk}
}

func (s *userService) Create(ctx context.Context, in UserInput) (*model.User, error) {
	if in.Username == "" || in.Password == "" || in.Name == "" {
		return nil, ErrMissingParams
	}
	existing, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	created, err := s.users.Create(ctx, &model.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         in.Name,
		Image:        in.Image,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, ErrMissingParams
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.clk.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(s.cfg.TokenTTLMin) * time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{UserID: user.ID, Token: token}, nil
}

func (s *userService) Update(ctx context.Context, id int64, in UserInput) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if in.Username != "" && in.Username != user.Username {
		existing, err := s.users.FindByUsername(ctx, in.Username)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if existing != nil {
			return nil, ErrUsernameTaken
		}
		user.Username = in.Username
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	user.Image = in.Image

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}
