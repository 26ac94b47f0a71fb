package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/White-Devil2839/peerflow/internal/governance"
	"github.com/White-Devil2839/peerflow/internal/models"
	"github.com/White-Devil2839/peerflow/internal/storage"
)

// OverdueService runs the peer sanctioning process: members vote to
// mark a chronically indebted peer overdue, and a 75% supermajority
// applies the sanction.
type OverdueService struct {
	store  storage.Store
	locks  *GroupLocks
	logger *slog.Logger
}

func NewOverdueService(store storage.Store, locks *GroupLocks, logger *slog.Logger) *OverdueService {
	return &OverdueService{store: store, locks: locks, logger: logger}
}

// CastVote records or replaces the voter's overdue vote for target and
// recomputes the target's standing from the full tally. Unlike expense
// votes, overdue votes are upsertable: a voter can switch from mark to
// clear at any time and the standing follows.
func (s *OverdueService) CastVote(ctx context.Context, groupID, targetID, voterID string, choice models.OverdueChoice) (*models.OverdueStanding, error) {
	if !choice.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVote, choice)
	}

	group, err := loadGroup(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, voterID); err != nil {
		return nil, err
	}
	if !group.HasMember(targetID) {
		return nil, fmt.Errorf("target: %w", ErrTargetNotMember)
	}
	if targetID == voterID {
		return nil, fmt.Errorf("%w: cannot vote on your own standing", ErrSelfReference)
	}
	if err := requireActive(ctx, s.store, group.ID, voterID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(group.ID)
	defer unlock()

	vote := models.OverdueVote{
		GroupID:      group.ID,
		TargetUserID: targetID,
		VoterID:      voterID,
		Vote:         choice,
		CreatedAt:    time.Now().Unix(),
	}
	if err := s.store.UpsertOverdueVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("record overdue vote: %w", err)
	}

	votes, err := s.store.ListOverdueVotes(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("list overdue votes: %w", err)
	}
	status := governance.ResolveStatus(votes, targetID, len(group.Members))
	if err := s.store.UpsertMemberStatus(ctx, group.ID, targetID, status); err != nil {
		return nil, fmt.Errorf("update member status: %w", err)
	}
	if status == models.MemberOverdue {
		s.logger.Info("member marked overdue",
			"group_id", group.ID, "user_id", targetID)
	}

	target, err := s.store.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("load target user: %w", err)
	}
	return &models.OverdueStanding{
		UserID:        targetID,
		Name:          target.Name,
		Status:        status,
		MarkVotes:     governance.MarkCount(votes, targetID),
		RequiredVotes: governance.RequiredVotes(len(group.Members)),
	}, nil
}

// Status returns every member's standing with their current mark tally.
func (s *OverdueService) Status(ctx context.Context, groupID, actorID string) ([]models.OverdueStanding, error) {
	group, err := loadGroup(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, actorID); err != nil {
		return nil, err
	}

	votes, err := s.store.ListOverdueVotes(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("list overdue votes: %w", err)
	}
	statuses, err := s.store.ListMemberStatuses(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	users, err := s.store.GetUsersByID(ctx, group.Members)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}

	required := governance.RequiredVotes(len(group.Members))
	standings := make([]models.OverdueStanding, 0, len(group.Members))
	for _, id := range group.Members {
		status, ok := statuses[id]
		if !ok {
			status = models.MemberActive
		}
		name := ""
		if u, ok := users[id]; ok {
			name = u.Name
		}
		standings = append(standings, models.OverdueStanding{
			UserID:        id,
			Name:          name,
			Status:        status,
			MarkVotes:     governance.MarkCount(votes, id),
			RequiredVotes: required,
		})
	}
	return standings, nil
}
