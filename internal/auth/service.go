package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/user-management/internal"
	"github.com/frahmantamala/user-management/internal/core/events"
)

// LoginUser is everything the login flow needs about a stored user,
// including the names of the active access levels in assignment order.
type LoginUser struct {
	ID               int64
	Name             string
	Email            string
	PasswordHash     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ActiveLevelNames []string
}

type RepositoryAPI interface {
	GetUserForLogin(ctx context.Context, email string) (*LoginUser, error)
}

type PasswordVerifierAPI interface {
	Verify(password, digest string) bool
}

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

type Service struct {
	repo     RepositoryAPI
	issuer   TokenIssuerAPI
	hasher   PasswordVerifierAPI
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, issuer TokenIssuerAPI, hasher PasswordVerifierAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		issuer:   issuer,
		hasher:   hasher,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same error so callers cannot enumerate
// registered addresses.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserForLogin(ctx, dto.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, internal.ErrInvalidCredentials
	}

	if !s.hasher.Verify(dto.Password, user.PasswordHash) {
		return nil, internal.ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Issue(TokenSubject{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		RoleNames: user.ActiveLevelNames,
	})
	if err != nil {
		s.logger.Error("failed to issue session token", "user_id", user.ID, "error", err)
		return nil, err
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewUserLoggedInEvent(user.ID, user.Email))
	}

	var level *string
	if len(user.ActiveLevelNames) > 0 {
		level = &user.ActiveLevelNames[0]
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: PublicUser{
			ID:          user.ID,
			Name:        user.Name,
			Email:       user.Email,
			AccessLevel: level,
			CreatedAt:   user.CreatedAt,
			UpdatedAt:   user.UpdatedAt,
		},
	}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.issuer.Validate(tokenString)
}
