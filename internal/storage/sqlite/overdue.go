package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/White-Devil2839/peerflow/internal/models"
)

// UpsertOverdueVote records or replaces the (group, target, voter)
// vote. Unlike approval votes, overdue votes are last-write-wins.
func (s *SQLiteStore) UpsertOverdueVote(ctx context.Context, vote models.OverdueVote) error {
	if vote.CreatedAt == 0 {
		vote.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO overdue_votes (group_id, target_user_id, voter_id, vote, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (group_id, target_user_id, voter_id)
		 DO UPDATE SET vote = excluded.vote, created_at = excluded.created_at`,
		vote.GroupID, vote.TargetUserID, vote.VoterID, string(vote.Vote), vote.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert overdue vote: %w", err)
	}
	return nil
}

// ListOverdueVotes retrieves all live overdue votes in a group.
func (s *SQLiteStore) ListOverdueVotes(ctx context.Context, groupID string) ([]models.OverdueVote, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT group_id, target_user_id, voter_id, vote, created_at
		 FROM overdue_votes WHERE group_id = ? ORDER BY created_at, voter_id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue votes: %w", err)
	}
	defer rows.Close()

	var votes []models.OverdueVote
	for rows.Next() {
		var vote models.OverdueVote
		var choice string
		if err := rows.Scan(&vote.GroupID, &vote.TargetUserID, &vote.VoterID, &choice, &vote.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan overdue vote: %w", err)
		}
		vote.Vote = models.OverdueChoice(choice)
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate overdue votes: %w", err)
	}
	return votes, nil
}

// UpsertMemberStatus records or replaces a member's standing.
func (s *SQLiteStore) UpsertMemberStatus(ctx context.Context, groupID, userID string, status models.MemberStatus) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO member_statuses (group_id, user_id, status) VALUES (?, ?, ?)
		 ON CONFLICT (group_id, user_id) DO UPDATE SET status = excluded.status`,
		groupID, userID, string(status),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert member status: %w", err)
	}
	return nil
}

// GetMemberStatus returns the member's standing. An absent row means
// active; status records are lazily materialized.
func (s *SQLiteStore) GetMemberStatus(ctx context.Context, groupID, userID string) (models.MemberStatus, error) {
	var status string
	err := s.db.QueryRowContext(ctx,
		"SELECT status FROM member_statuses WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return models.MemberActive, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get member status: %w", err)
	}
	return models.MemberStatus(status), nil
}

// ListMemberStatuses returns the materialized status records for a
// group, keyed by user ID.
func (s *SQLiteStore) ListMemberStatuses(ctx context.Context, groupID string) (map[string]models.MemberStatus, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, status FROM member_statuses WHERE group_id = ?",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list member statuses: %w", err)
	}
	defer rows.Close()

	statuses := make(map[string]models.MemberStatus)
	for rows.Next() {
		var userID, status string
		if err := rows.Scan(&userID, &status); err != nil {
			return nil, fmt.Errorf("failed to scan member status: %w", err)
		}
		statuses[userID] = models.MemberStatus(status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate member statuses: %w", err)
	}
	return statuses, nil
}
