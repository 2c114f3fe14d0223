package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"flux-backend/src/models"
	"flux-backend/src/utils"

	"golang.org/x/crypto/bcrypt"
)

const RoleAdmin = "admin"

var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrLoginDisabled      = errors.New("Admin login is not configured")
)

// Service authenticates the single configured admin account.
type Service struct {
	email  string
	hash   []byte
	secret []byte
	now    func() time.Time
}

func NewService(email, passwordHash, secret string) *Service {
	return &Service{
		email:  strings.ToLower(strings.TrimSpace(email)),
		hash:   []byte(passwordHash),
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (s *Service) Enabled() bool {
	return s.email != "" && len(s.hash) > 0 && len(s.secret) > 0
}

// Login checks the credentials against the bcrypt hash and issues a token.
func (s *Service) Login(email, password string) (*models.TokenResponse, error) {
	if !s.Enabled() {
		return nil, ErrLoginDisabled
	}

	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	// always pay the bcrypt cost so unknown emails are not cheaper
	passErr := bcrypt.CompareHashAndPassword(s.hash, []byte(password))
	if !emailOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateJWT(s.secret, s.email, RoleAdmin, s.now())
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// HashPassword produces the value to put in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}
