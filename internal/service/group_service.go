package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/White-Devil2839/peerflow/internal/auth"
	"github.com/White-Devil2839/peerflow/internal/models"
	"github.com/White-Devil2839/peerflow/internal/storage"
)

// GroupService manages group creation and membership.
type GroupService struct {
	store            storage.Store
	defaultThreshold int64
	logger           *slog.Logger
}

// NewGroupService builds a group service. defaultThreshold applies to
// groups created without an explicit settlement threshold.
func NewGroupService(store storage.Store, defaultThreshold int64, logger *slog.Logger) *GroupService {
	return &GroupService{store: store, defaultThreshold: defaultThreshold, logger: logger}
}

// CreateGroupInput is the group creation payload. Password is optional;
// Threshold zero or negative falls back to the service default.
type CreateGroupInput struct {
	Name      string
	Password  string
	Threshold int64
}

// Create creates a group with the creator as its first member. A user
// currently sanctioned as overdue in any of their groups may not open
// new ones until the standing debt is resolved.
func (s *GroupService) Create(ctx context.Context, in CreateGroupInput, creatorID string) (*models.Group, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrValidation)
	}

	if err := s.requireGoodStanding(ctx, creatorID); err != nil {
		return nil, err
	}

	hash, err := auth.HashGroupPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash group password: %w", err)
	}

	threshold := in.Threshold
	if threshold <= 0 {
		threshold = s.defaultThreshold
	}

	group := &models.Group{
		Name:                name,
		JoinCode:            newJoinCode(),
		PasswordHash:        hash,
		SettlementThreshold: threshold,
		CreatedBy:           creatorID,
		Members:             []string{creatorID},
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	s.logger.Info("group created",
		"group_id", group.ID, "name", group.Name, "join_code", group.JoinCode)
	return group, nil
}

// Join adds the user to the group identified by joinCode. Groups with
// a password require it; open groups ignore whatever is supplied.
func (s *GroupService) Join(ctx context.Context, joinCode, password, userID string) (*models.Group, error) {
	group, err := s.store.GetGroupByJoinCode(ctx, strings.ToUpper(strings.TrimSpace(joinCode)))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("join code: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup join code: %w", err)
	}

	if !auth.CheckGroupPassword(group.PasswordHash, password) {
		return nil, ErrGroupPassword
	}
	if group.HasMember(userID) {
		return nil, ErrAlreadyMember
	}

	if err := s.store.AddGroupMember(ctx, group.ID, userID); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	group.Members = append(group.Members, userID)

	s.logger.Info("member joined group", "group_id", group.ID, "user_id", userID)
	return group, nil
}

// Get returns a group, visible to members only.
func (s *GroupService) Get(ctx context.Context, groupID, actorID string) (*models.Group, error) {
	group, err := loadGroup(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, actorID); err != nil {
		return nil, err
	}
	return group, nil
}

// ListForUser returns the groups the user belongs to.
func (s *GroupService) ListForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	groups, err := s.store.ListGroupsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// requireGoodStanding fails with ErrGovernanceRestricted when the user
// is marked overdue in any group they belong to.
func (s *GroupService) requireGoodStanding(ctx context.Context, userID string) error {
	groups, err := s.store.ListGroupsForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}
	for _, g := range groups {
		status, err := s.store.GetMemberStatus(ctx, g.ID, userID)
		if err != nil {
			return fmt.Errorf("member status: %w", err)
		}
		if status == models.MemberOverdue {
			return fmt.Errorf("overdue in group %s: %w", g.ID, ErrGovernanceRestricted)
		}
	}
	return nil
}

// newJoinCode derives a short uppercase code from a fresh UUID. Eight
// hex characters keep collisions unlikely at this scale; the unique
// index on join_code catches the rest.
func newJoinCode() string {
	id := uuid.New().String()
	return strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}
