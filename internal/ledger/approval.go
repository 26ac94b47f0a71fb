package ledger

import "github.com/White-Devil2839/peerflow/internal/models"

// RequiredApprovals returns the simple-majority vote count for a group:
// ceil(groupSize/2). A group of size 1 needs 1, which is why original
// expenses in single-member groups auto-approve at creation.
func RequiredApprovals(groupSize int) int {
	return (groupSize + 1) / 2
}

// ResolveApproval applies the approval state machine to a vote tally.
// An expense is approved as soon as approvals reach the required count,
// and rejected as soon as approval becomes mathematically unreachable:
// rejectCount > groupSize - required. Otherwise it stays pending.
//
// The tally is always recomputed from the full vote list; there are no
// incremental counters to drift.
func ResolveApproval(approvals []models.ApprovalVote, required, groupSize int) models.ExpenseStatus {
	approves, rejects := 0, 0
	for _, a := range approvals {
		switch a.Vote {
		case models.VoteApprove:
			approves++
		case models.VoteReject:
			rejects++
		}
	}

	if approves >= required {
		return models.ExpenseApproved
	}
	if rejects > groupSize-required {
		return models.ExpenseRejected
	}
	return models.ExpensePending
}
