package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/accessflow/accessflow/internal/core/domain"
	"github.com/accessflow/accessflow/internal/core/ports"
)

// AuthService implements registration and login for the credential service.
type AuthService struct {
	repo      ports.UserRepository
	audit     ports.AuditSink
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService wires the service. audit may be nil, in which case no audit
// events are emitted.
func NewAuthService(repo ports.UserRepository, audit ports.AuditSink, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, audit: audit, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, email, name, password string, role domain.Role) (*domain.User, error) {
	if email == "" || password == "" || !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		s.auditEvent(email, "register", "rejected", err.Error())
		return nil, err
	}
	s.auditEvent(email, "register", "created", string(role))
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Do not reveal whether the account exists.
			s.auditEvent(email, "login", "denied", "unknown account")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.auditEvent(email, "login", "denied", "wrong password")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.auditEvent(email, "login", "success", string(user.Role))
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  string(user.Role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) auditEvent(actor, action, outcome, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuditEntryInput{
		Actor:     actor,
		Action:    action,
		Outcome:   outcome,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}
