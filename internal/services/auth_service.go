package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/models"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/repositories"
)

// Authentication errors. Every token error returned by ValidateToken wraps
// exactly one of ErrTokenExpired, ErrTokenMalformed or ErrTokenInvalid.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenMalformed     = errors.New("token is malformed")
	ErrTokenInvalid       = errors.New("token verification failed")
	ErrUserNotFound       = errors.New("user not found")
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 72 * time.Hour

const avatarURLFormat = "https://robohash.org/%s?set=set5"

// Claims is the payload carried by an auth token.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.StandardClaims
}

// SignupInput carries the fields accepted by Signup.
type SignupInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CreatedBy *uint  `json:"created_by"`
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	hashCost  int
	now       func() time.Time
}

// NewAuthService creates a new AuthService. A non-positive ttl falls back to DefaultTokenTTL.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  ttl,
		hashCost:  bcrypt.DefaultCost,
		now:       time.Now,
	}
}

// AvatarURL returns the placeholder avatar derived from a username.
func AvatarURL(username string) string {
	return fmt.Sprintf(avatarURLFormat, url.PathEscape(username))
}

// Signup hashes the password and stores a new user. Store failures, including
// a taken username, are returned as-is.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashedPassword),
		Role:      in.Role,
		CreatedBy: in.CreatedBy,
		Avatar:    AvatarURL(in.Username),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and returns the stored user and a fresh token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken signs a token carrying the user's username and email.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: user.Username,
		Email:    user.Email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.tokenTTL).Unix(),
		},
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken checks the signature and expiry of a token and returns its claims.
// There is no revocation: a well-signed token is valid until it expires.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, classifyTokenError(err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func classifyTokenError(err error) error {
	var vErr *jwt.ValidationError
	if !errors.As(err, &vErr) {
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	switch {
	case vErr.Errors&jwt.ValidationErrorMalformed != 0:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	case vErr.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0:
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	case vErr.Errors&jwt.ValidationErrorExpired != 0:
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
}

// AdminDetails resolves the user a valid token was issued to.
func (s *AuthService) AdminDetails(ctx context.Context, claims *Claims) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Token for %s refers to a missing user", claims.Username)
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListAdmins retrieves every user.
func (s *AuthService) ListAdmins(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}
