package governance

import (
	"testing"

	"github.com/White-Devil2839/peerflow/internal/models"
)

func TestRequiredVotes(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 3, 4: 3, 5: 4, 6: 5, 7: 6, 8: 6, 100: 75}
	for size, want := range cases {
		if got := RequiredVotes(size); got != want {
			t.Errorf("RequiredVotes(%d) = %d, want %d", size, got, want)
		}
	}
}

func markVotes(target string, n int) []models.OverdueVote {
	vs := make([]models.OverdueVote, n)
	for i := range vs {
		vs[i] = models.OverdueVote{
			TargetUserID: target,
			VoterID:      string(rune('a' + i)),
			Vote:         models.VoteMarkOverdue,
		}
	}
	return vs
}

func TestResolveStatus(t *testing.T) {
	const groupSize = 5 // required = 4

	tests := []struct {
		name  string
		votes []models.OverdueVote
		want  models.MemberStatus
	}{
		{
			name:  "no votes is active",
			votes: nil,
			want:  models.MemberActive,
		},
		{
			name:  "three marks stays active",
			votes: markVotes("X", 3),
			want:  models.MemberActive,
		},
		{
			name:  "four marks is overdue",
			votes: markVotes("X", 4),
			want:  models.MemberOverdue,
		},
		{
			name: "clear votes do not count toward the mark tally",
			votes: append(markVotes("X", 3), models.OverdueVote{
				TargetUserID: "X",
				VoterID:      "z",
				Vote:         models.VoteClearOverdue,
			}),
			want: models.MemberActive,
		},
		{
			name: "votes against other targets are ignored",
			votes: append(markVotes("X", 3), models.OverdueVote{
				TargetUserID: "Y",
				VoterID:      "z",
				Vote:         models.VoteMarkOverdue,
			}),
			want: models.MemberActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveStatus(tt.votes, "X", groupSize); got != tt.want {
				t.Errorf("ResolveStatus = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestShouldAutoClear(t *testing.T) {
	tests := []struct {
		name      string
		net       int64
		threshold int64
		want      bool
	}{
		{"creditor clears", 5000, 10000, true},
		{"settled clears", 0, 10000, true},
		{"debt below threshold clears", -9999, 10000, true},
		{"debt at threshold stays sanctioned", -10000, 10000, false},
		{"debt above threshold stays sanctioned", -20000, 10000, false},
		{"zero threshold keeps any debtor sanctioned", -1, 0, false},
		{"zero threshold clears settled member", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldAutoClear(tt.net, tt.threshold); got != tt.want {
				t.Errorf("ShouldAutoClear(%d, %d) = %v, want %v", tt.net, tt.threshold, got, tt.want)
			}
		})
	}
}
