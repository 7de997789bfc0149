package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"recipe_service/internal/models"
	"recipe_service/internal/repository"
)

const defaultTokenTTL = time.Hour

// Domain errors for auth flows.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
)

// AuthService handles user auth logic
type AuthService struct {
	authRepo   repository.Authorization
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time
}

func NewAuthService(repo repository.Authorization, cfg AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		authRepo:   repo,
		signingKey: []byte(cfg.SigningKey),
		tokenTTL:   ttl,
		now:        time.Now,
	}
}

// SignUp hashes password and creates a new user
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int, error) {
	if strings.TrimSpace(username) == "" {
		return 0, errors.New("username is empty")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	return s.authRepo.Create(ctx, username, hash)
}

// EnsureUser creates the user unless it already exists. The bool reports
// whether a new user was created.
func (s *AuthService) EnsureUser(ctx context.Context, username, password string) (int, bool, error) {
	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return 0, false, err
	}
	if u != nil {
		return u.ID, false, nil
	}
	id, err := s.SignUp(ctx, username, password)
	if errors.Is(err, repository.ErrUsernameTaken) {
		// created concurrently since the lookup
		u, err = s.authRepo.GetByUsername(ctx, username)
		if err != nil {
			return 0, false, err
		}
		if u == nil {
			return 0, false, repository.ErrUsernameTaken
		}
		return u.ID, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// GenerateToken validates credentials and returns a signed JWT together with
// the authenticated user. Unknown users and wrong passwords are reported as
// ErrUserNotFound and ErrInvalidPassword.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, *models.User, error) {
	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("find user %q: %w", username, err)
	}
	if u == nil {
		return "", nil, ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidPassword
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, &models.User{ID: u.ID, Username: u.Username}, nil
}

// ParseToken parses JWT and returns userID
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) issueToken(userID int) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}
