package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/White-Devil2839/peerflow/internal/models"
	"github.com/White-Devil2839/peerflow/internal/storage"
)

// requireMember checks that userID belongs to the group.
func requireMember(g *models.Group, userID string) error {
	if !g.HasMember(userID) {
		return ErrNotAMember
	}
	return nil
}

// requireActive is the governance gate: it rejects actors who are
// currently marked overdue in the group. Callers apply it to expense
// creation, approval voting and overdue voting. Payments and reads are
// deliberately never gated, an overdue member must be able to pay
// their way back to good standing.
func requireActive(ctx context.Context, st storage.Store, groupID, userID string) error {
	status, err := st.GetMemberStatus(ctx, groupID, userID)
	if err != nil {
		return fmt.Errorf("check member status: %w", err)
	}
	if status == models.MemberOverdue {
		return ErrGovernanceRestricted
	}
	return nil
}

// loadGroup fetches a group and maps absence onto ErrNotFound.
func loadGroup(ctx context.Context, st storage.Store, groupID string) (*models.Group, error) {
	g, err := st.GetGroup(ctx, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("group %s: %w", groupID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load group: %w", err)
	}
	return g, nil
}
