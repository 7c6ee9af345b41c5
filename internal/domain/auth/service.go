package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"showhome/internal/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginDisabled      = errors.New("admin login is not configured")
)

// RoleAdmin is the only role this backend knows; end users never log
// in, they present access codes.
const RoleAdmin = "admin"

// Service authenticates the single configured admin identity. The
// bcrypt hash comes from configuration, never from a user table.
type Service struct {
	passwordHash []byte
	jwt          *jwt.Service
}

func NewService(passwordHash string, jwtService *jwt.Service) *Service {
	return &Service{
		passwordHash: []byte(passwordHash),
		jwt:          jwtService,
	}
}

// Login verifies the admin password and issues a bearer token.
func (s *Service) Login(password string) (string, error) {
	if len(s.passwordHash) == 0 {
		return "", ErrLoginDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwt.GenerateToken("admin", RoleAdmin)
}
