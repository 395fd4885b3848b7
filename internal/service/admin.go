package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/pkrstore/storefront-backend/pkg/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// RoleAdmin is the role claim carried by admin tokens.
const RoleAdmin = "admin"

// Identity is the decoded result of a verified token.
type Identity struct {
	Role string
}

// AdminService is the admin gate: it checks the configured credential
// pair and issues/verifies the bearer tokens protecting write routes.
type AdminService struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(cfg *config.Config, logger *zap.Logger) *AdminService {
	return &AdminService{
		cfg:    cfg,
		logger: logger.Named("admin-service"),
	}
}

// Login checks the credentials and issues a signed admin token. The
// email is lowercased and both fields are trimmed before comparison.
// A mismatch never reveals which field was wrong.
func (s *AdminService) Login(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	wantEmail := strings.ToLower(strings.TrimSpace(s.cfg.Admin.Email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(wantEmail)) == 1

	passwordOK := false
	for _, p := range s.cfg.Admin.Passwords {
		if subtle.ConstantTimeCompare([]byte(password), []byte(p)) == 1 {
			passwordOK = true
		}
	}

	if !emailOK || !passwordOK {
		s.logger.Warn("Failed admin login attempt")
		return "", ErrInvalidCredentials
	}

	token, err := s.generateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("Admin logged in")
	return token, nil
}

// Verify validates an admin token and returns the decoded identity.
// Absent, malformed, mis-signed, expired, and non-admin tokens are all
// ErrInvalidToken.
func (s *AdminService) Verify(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	if role != RoleAdmin {
		return nil, ErrInvalidToken
	}

	return &Identity{Role: role}, nil
}

func (s *AdminService) generateToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"role": RoleAdmin,
		"iss":  s.cfg.JWT.Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Duration(s.cfg.JWT.ExpiryHours) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.Secret))
}
