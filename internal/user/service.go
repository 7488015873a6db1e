package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/user-management/internal"
	levelDatamodel "github.com/frahmantamala/user-management/internal/core/datamodel/accesslevel"
	userDatamodel "github.com/frahmantamala/user-management/internal/core/datamodel/user"
	"github.com/frahmantamala/user-management/internal/core/events"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetAll(ctx context.Context) ([]*userDatamodel.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Exists(ctx context.Context, userID int64) (bool, error)
	Create(ctx context.Context, user *userDatamodel.User) error
	GetActiveLevelNames(ctx context.Context, userID int64) ([]string, error)
}

type AssignmentWriterAPI interface {
	Create(ctx context.Context, assignment *levelDatamodel.UserAccessLevel) error
}

type PasswordHasherAPI interface {
	Hash(password string) (string, error)
}

type Service struct {
	repo           RepositoryAPI
	assignmentRepo AssignmentWriterAPI
	policy         *ProvisioningPolicy
	hasher         PasswordHasherAPI
	eventBus       *events.EventBus
	logger         *slog.Logger
}

func NewService(repo RepositoryAPI, assignmentRepo AssignmentWriterAPI, policy *ProvisioningPolicy, hasher PasswordHasherAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:           repo,
		assignmentRepo: assignmentRepo,
		policy:         policy,
		hasher:         hasher,
		eventBus:       eventBus,
		logger:         logger,
	}
}

// CreateUser provisions an account. Step order matters: the email uniqueness
// check runs before anything else, the level is resolved before the password
// is hashed, and the role assignment is only written once the user row
// exists. A level resolution failure therefore leaves nothing behind.
func (s *Service) CreateUser(ctx context.Context, dto CreateUserDTO, callerIsAdministrator bool) (*UserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, dto.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, internal.ErrEmailAlreadyExists
	}

	assignedLevel, explicit, err := s.policy.DecideAssignedLevel(ctx, dto.AccessLevelID, callerIsAdministrator)
	if err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newUser := &userDatamodel.User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		s.logger.Error("failed to insert user", "email", dto.Email, "error", err)
		return nil, err
	}

	assignment := &levelDatamodel.UserAccessLevel{
		UserID:        newUser.ID,
		AccessLevelID: assignedLevel.ID,
		IsActive:      true,
		AssignedAt:    now,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		s.logger.Error("failed to create role assignment for new user",
			"user_id", newUser.ID, "access_level_id", assignedLevel.ID, "error", err)
		return nil, err
	}

	s.logger.Info("user provisioned",
		"user_id", newUser.ID,
		"access_level", assignedLevel.Name,
		"explicitly_requested", explicit)

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewUserCreatedEvent(newUser.ID, newUser.Email, assignedLevel.Name))
	}

	return &UserResponse{
		ID:          newUser.ID,
		Name:        newUser.Name,
		Email:       newUser.Email,
		AccessLevel: &assignedLevel.Name,
		CreatedAt:   newUser.CreatedAt,
		UpdatedAt:   newUser.UpdatedAt,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, userID int64) (*User, error) {
	dataUser, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if dataUser == nil {
		return nil, internal.ErrUserNotFound
	}

	role, err := s.effectiveRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	return FromDataModelWithRole(dataUser, role), nil
}

func (s *Service) GetAll(ctx context.Context) ([]*User, error) {
	dataUsers, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]*User, 0, len(dataUsers))
	for _, du := range dataUsers {
		role, err := s.effectiveRole(ctx, du.ID)
		if err != nil {
			return nil, err
		}
		users = append(users, FromDataModelWithRole(du, role))
	}
	return users, nil
}

// effectiveRole picks the first active assignment's level name, or nil when
// the user holds none.
func (s *Service) effectiveRole(ctx context.Context, userID int64) (*string, error) {
	names, err := s.repo.GetActiveLevelNames(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}
	return &names[0], nil
}
