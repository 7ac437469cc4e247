package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ahsankhan2345/shopping-hify/internal/domain"
)

const minPasswordLen = 6

// UserStore persists registered accounts.
type UserStore interface {
	PutUser(ctx context.Context, u domain.User) error
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByName(ctx context.Context, name string) (domain.User, error)
}

// SessionStore persists session records keyed by auth token.
type SessionStore interface {
	PutSession(ctx context.Context, s domain.Session) error
	GetSession(ctx context.Context, token string) (domain.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// Service tracks at most one logged-in identity per session token. The
// "remember" choice selects where the session lives: the durable store
// survives restarts, the ephemeral store lasts for the process lifetime.
// Passwords are stored as bcrypt hashes only.
type Service struct {
	users     UserStore
	durable   SessionStore
	ephemeral SessionStore
	tokens    *TokenManager
	logger    *zap.Logger
}

func NewService(users UserStore, durable, ephemeral SessionStore, tokens *TokenManager, logger *zap.Logger) *Service {
	return &Service{
		users:     users,
		durable:   durable,
		ephemeral: ephemeral,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates an account and establishes a session for it.
func (s *Service) Register(ctx context.Context, name, email, password string, remember bool) (domain.Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return domain.Session{}, domain.Validationf("all fields are required")
	}
	if len(password) < minPasswordLen {
		return domain.Session{}, domain.Validationf("password must be at least %d characters", minPasswordLen)
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return domain.Session{}, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Session{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Session{}, err
	}

	user := domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.users.PutUser(ctx, user); err != nil {
		return domain.Session{}, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return s.establish(ctx, user, remember)
}

// Login verifies the claimed credential against the stored hash and
// establishes a session. The identifier matches by email first, then by name.
func (s *Service) Login(ctx context.Context, identifier, password string, remember bool) (domain.Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return domain.Session{}, domain.Validationf("identifier and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.users.GetUserByName(ctx, identifier)
	}
	if err != nil {
		return domain.Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return s.establish(ctx, user, remember)
}

// Logout clears the session from both stores unconditionally.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.ephemeral.DeleteSession(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if err := s.durable.DeleteSession(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// Current returns the session for the token, wherever it lives.
func (s *Service) Current(ctx context.Context, token string) (domain.Session, error) {
	sess, err := s.ephemeral.GetSession(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		sess, err = s.durable.GetSession(ctx, token)
	}
	return sess, err
}

func (s *Service) establish(ctx context.Context, user domain.User, remember bool) (domain.Session, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return domain.Session{}, err
	}

	sess := domain.Session{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AuthToken: token,
		CreatedAt: time.Now(),
	}

	store := s.ephemeral
	if remember {
		store = s.durable
	}
	if err := store.PutSession(ctx, sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}
