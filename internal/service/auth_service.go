package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shop-backend/internal/metrics"
	"shop-backend/internal/model"
	"shop-backend/internal/repository"
)

// tokenTTL is the lifetime of an issued bearer token.
const tokenTTL = 2 * time.Hour

// adminUsername is the username given to the bootstrap-seeded admin account.
const adminUsername = "admin"

// AuthService handles registration, login, and the one-time admin bootstrap.
// Passwords are stored only as bcrypt hashes; tokens are HS256-signed JWTs.
type AuthService struct {
	users     repository.Repository
	jwtSecret string
}

// NewAuthService creates an AuthService backed by the given user repository.
func NewAuthService(users repository.Repository, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

// Register creates a new user account. A duplicate email surfaces as a
// repository.UniqueConstraintError.
func (as *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if strings.TrimSpace(email) == "" {
		return nil, &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "must not be empty"}
	}

	hash, err := model.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hash,
	}

	created, err := as.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	createdUser, ok := created.(*model.User)
	if !ok {
		return nil, repository.ErrInvalidType
	}

	metrics.UsersRegistered.Inc()
	return createdUser, nil
}

// Login verifies the credentials and issues a bearer token. Unknown email
// and wrong password both return ErrInvalidCredentials.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := as.findByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if !model.CheckPassword(user.Password, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := as.issueToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, user, nil
}

// SeedAdmin creates the admin account once at startup. It checks for an
// existing account first and is safe to run on every boot.
func (as *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		slog.Info("admin seeding skipped: no credentials configured")
		return nil
	}

	existing, err := as.findByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if existing != nil {
		slog.Info("admin account already exists", slog.String("email", email))
		return nil
	}

	if _, err := as.Register(ctx, adminUsername, email, password); err != nil {
		// A concurrent boot may have inserted it between the check and the insert.
		var uniqueErr *repository.UniqueConstraintError
		if errors.As(err, &uniqueErr) {
			return nil
		}
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	slog.Info("admin account seeded", slog.String("email", email))
	return nil
}

// VerifyToken parses and validates a bearer token, returning the user ID it
// carries.
func (as *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(as.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredentials
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidCredentials
	}
	return sub, nil
}

func (as *AuthService) issueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecret))
}

// findByEmail returns the user with the given email, or nil when none exists.
func (as *AuthService) findByEmail(ctx context.Context, email string) (*model.User, error) {
	query := repository.NewQuery().With(repository.EmailField, email)
	query.Limit = 1

	resources, err := as.users.List(ctx, *query)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	if len(resources) == 0 {
		return nil, nil
	}

	user, ok := resources[0].(*model.User)
	if !ok {
		return nil, repository.ErrInvalidType
	}
	return user, nil
}
