// Package ledger implements the accounting core: split calculation,
// approval resolution, net balance folding, debt graph construction and
// minimum cash flow simplification. Everything here is a pure function
// over integer minor units: no I/O, no floats, no hidden state.
package ledger

import (
	"fmt"

	"github.com/White-Devil2839/peerflow/internal/models"
)

// EqualSplit distributes total equally across participants with zero
// remainder loss: base = floor(total/n), and the first total-base*n
// participants (in the order supplied) carry one extra minor unit.
func EqualSplit(total int64, participants []string) ([]models.Split, error) {
	if total < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, total)
	}
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if seen[p] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, p)
		}
		seen[p] = true
	}

	n := int64(len(participants))
	base := total / n
	remainder := total - base*n

	splits := make([]models.Split, len(participants))
	for i, p := range participants {
		share := base
		if int64(i) < remainder {
			share++
		}
		splits[i] = models.Split{UserID: p, ShareAmount: share}
	}
	return splits, nil
}

// ValidateCustomSplit checks a caller-supplied split set: every share is
// a non-negative amount, participants are unique members of the group,
// and the shares sum to exactly total.
func ValidateCustomSplit(total int64, splits []models.Split, members []string) error {
	if total < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidAmount, total)
	}
	if len(splits) == 0 {
		return ErrNoParticipants
	}

	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		memberSet[m] = true
	}

	seen := make(map[string]bool, len(splits))
	var sum int64
	for _, s := range splits {
		if !memberSet[s.UserID] {
			return fmt.Errorf("user %s is not a member of this group", s.UserID)
		}
		if seen[s.UserID] {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, s.UserID)
		}
		seen[s.UserID] = true
		if s.ShareAmount < 0 {
			return fmt.Errorf("%w: share for %s is %d", ErrInvalidAmount, s.UserID, s.ShareAmount)
		}
		sum += s.ShareAmount
	}

	if sum != total {
		return fmt.Errorf("%w: shares sum to %d, total is %d", ErrSplitMismatch, sum, total)
	}
	return nil
}
