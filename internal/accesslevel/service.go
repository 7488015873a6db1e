package accesslevel

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/user-management/internal"
	levelDatamodel "github.com/frahmantamala/user-management/internal/core/datamodel/accesslevel"
	"github.com/frahmantamala/user-management/internal/core/events"
)

// RepositoryAPI is the access level catalogue store.
type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*levelDatamodel.AccessLevel, error)
	GetByID(ctx context.Context, id int64) (*levelDatamodel.AccessLevel, error)
	GetByName(ctx context.Context, name string) (*levelDatamodel.AccessLevel, error)
	Create(ctx context.Context, level *levelDatamodel.AccessLevel) error
}

// AssignmentRepositoryAPI is the user/level association store. Records are
// append-only: Revoke flips is_active and stamps revoked_at in place.
type AssignmentRepositoryAPI interface {
	Create(ctx context.Context, assignment *levelDatamodel.UserAccessLevel) error
	FindActive(ctx context.Context, userID, levelID int64) (*levelDatamodel.UserAccessLevel, error)
	Revoke(ctx context.Context, userID, levelID int64, revokedAt time.Time) error
	GetByUser(ctx context.Context, userID int64) ([]*levelDatamodel.UserAccessLevel, error)
	GetActiveByUser(ctx context.Context, userID int64) ([]*levelDatamodel.UserAccessLevel, error)
}

// UserExistsAPI is the slice of the user store this service needs.
type UserExistsAPI interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

type Service struct {
	repo           RepositoryAPI
	assignmentRepo AssignmentRepositoryAPI
	users          UserExistsAPI
	eventBus       *events.EventBus
	logger         *slog.Logger
}

func NewService(repo RepositoryAPI, assignmentRepo AssignmentRepositoryAPI, users UserExistsAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:           repo,
		assignmentRepo: assignmentRepo,
		users:          users,
		eventBus:       eventBus,
		logger:         logger,
	}
}

func (s *Service) GetAllLevels(ctx context.Context) ([]*AccessLevel, error) {
	dataLevels, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get access levels from repository", "error", err)
		return nil, err
	}

	levels := make([]*AccessLevel, 0, len(dataLevels))
	for _, dl := range dataLevels {
		levels = append(levels, FromDataModel(dl))
	}
	return levels, nil
}

func (s *Service) CreateLevel(ctx context.Context, dto CreateAccessLevelDTO) (*AccessLevel, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	level := &levelDatamodel.AccessLevel{
		Name:        dto.Name,
		Description: dto.Description,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, level); err != nil {
		s.logger.Error("failed to create access level", "name", dto.Name, "error", err)
		return nil, err
	}

	return FromDataModel(level), nil
}

// Assign creates a new active assignment record. A user may hold at most one
// active assignment per level; duplicates are rejected before insert.
func (s *Service) Assign(ctx context.Context, dto AssignAccessLevelDTO) (*UserAccessLevel, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, dto.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.ErrUserNotFound
	}

	level, err := s.repo.GetByID(ctx, dto.AccessLevelID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, errors.NewAccessLevelNotFoundError(dto.AccessLevelID)
	}

	active, err := s.assignmentRepo.FindActive(ctx, dto.UserID, dto.AccessLevelID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrLevelAlreadyActive
	}

	assignment := &levelDatamodel.UserAccessLevel{
		UserID:        dto.UserID,
		AccessLevelID: dto.AccessLevelID,
		IsActive:      true,
		AssignedAt:    time.Now(),
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		s.logger.Error("failed to create access level assignment",
			"user_id", dto.UserID, "access_level_id", dto.AccessLevelID, "error", err)
		return nil, err
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewAccessLevelAssignedEvent(dto.UserID, level.ID, level.Name))
	}

	return AssignmentFromDataModel(assignment, level.Name), nil
}

// Revoke deactivates an active assignment. The record stays in place with
// revoked_at stamped; re-assignment later creates a fresh record.
func (s *Service) Revoke(ctx context.Context, dto RevokeAccessLevelDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.assignmentRepo.Revoke(ctx, dto.UserID, dto.AccessLevelID, time.Now()); err != nil {
		s.logger.Error("failed to revoke access level",
			"user_id", dto.UserID, "access_level_id", dto.AccessLevelID, "error", err)
		return err
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewAccessLevelRevokedEvent(dto.UserID, dto.AccessLevelID))
	}

	return nil
}

// GetUserLevels returns the full audit trail for a user, active and revoked.
func (s *Service) GetUserLevels(ctx context.Context, userID int64) ([]*UserAccessLevel, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.ErrUserNotFound
	}

	assignments, err := s.assignmentRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*UserAccessLevel, 0, len(assignments))
	for _, a := range assignments {
		name := ""
		if level, err := s.repo.GetByID(ctx, a.AccessLevelID); err == nil && level != nil {
			name = level.Name
		}
		result = append(result, AssignmentFromDataModel(a, name))
	}
	return result, nil
}

// HasActiveLevel reports whether the user currently holds the level.
func (s *Service) HasActiveLevel(ctx context.Context, userID, levelID int64) (bool, error) {
	active, err := s.assignmentRepo.FindActive(ctx, userID, levelID)
	if err != nil {
		return false, err
	}
	return active != nil, nil
}
