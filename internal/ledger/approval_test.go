package ledger

import (
	"testing"

	"github.com/White-Devil2839/peerflow/internal/models"
)

func TestRequiredApprovals(t *testing.T) {
	cases := map[int]int{1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 6: 3, 7: 4, 10: 5}
	for size, want := range cases {
		if got := RequiredApprovals(size); got != want {
			t.Errorf("RequiredApprovals(%d) = %d, want %d", size, got, want)
		}
	}
}

func votes(choices ...models.VoteChoice) []models.ApprovalVote {
	vs := make([]models.ApprovalVote, len(choices))
	for i, c := range choices {
		vs[i] = models.ApprovalVote{VoterID: string(rune('a' + i)), Vote: c}
	}
	return vs
}

func TestResolveApproval(t *testing.T) {
	const groupSize = 5
	required := RequiredApprovals(groupSize) // 3

	tests := []struct {
		name      string
		approvals []models.ApprovalVote
		want      models.ExpenseStatus
	}{
		{
			name:      "no votes stays pending",
			approvals: nil,
			want:      models.ExpensePending,
		},
		{
			name:      "two approvals stays pending",
			approvals: votes(models.VoteApprove, models.VoteApprove),
			want:      models.ExpensePending,
		},
		{
			name:      "third approval approves",
			approvals: votes(models.VoteApprove, models.VoteApprove, models.VoteApprove),
			want:      models.ExpenseApproved,
		},
		{
			name:      "two rejects stays pending",
			approvals: votes(models.VoteReject, models.VoteReject),
			want:      models.ExpensePending,
		},
		{
			name:      "third reject makes approval unreachable",
			approvals: votes(models.VoteReject, models.VoteReject, models.VoteReject),
			want:      models.ExpenseRejected,
		},
		{
			name:      "mixed votes below both thresholds",
			approvals: votes(models.VoteApprove, models.VoteReject, models.VoteApprove, models.VoteReject),
			want:      models.ExpensePending,
		},
		{
			name:      "approval wins at the boundary",
			approvals: votes(models.VoteReject, models.VoteReject, models.VoteApprove, models.VoteApprove, models.VoteApprove),
			want:      models.ExpenseApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveApproval(tt.approvals, required, groupSize)
			if got != tt.want {
				t.Errorf("ResolveApproval = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveApprovalSmallGroups(t *testing.T) {
	// Two-member group: one approval decides, one reject makes approval
	// unreachable (1 > 2-1 is false, so a single reject stays pending).
	required := RequiredApprovals(2) // 1

	if got := ResolveApproval(votes(models.VoteApprove), required, 2); got != models.ExpenseApproved {
		t.Errorf("single approve in pair = %s, want approved", got)
	}
	if got := ResolveApproval(votes(models.VoteReject), required, 2); got != models.ExpensePending {
		t.Errorf("single reject in pair = %s, want pending", got)
	}
	if got := ResolveApproval(votes(models.VoteReject, models.VoteReject), required, 2); got != models.ExpenseRejected {
		t.Errorf("two rejects in pair = %s, want rejected", got)
	}
}
