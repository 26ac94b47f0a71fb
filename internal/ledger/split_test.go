package ledger

import (
	"errors"
	"testing"

	"github.com/White-Devil2839/peerflow/internal/models"
)

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name         string
		total        int64
		participants []string
		wantErr      error
		wantShares   []int64
	}{
		{
			name:         "even division",
			total:        30000,
			participants: []string{"A", "B", "C"},
			wantShares:   []int64{10000, 10000, 10000},
		},
		{
			name:         "remainder goes to first participants in order",
			total:        10000,
			participants: []string{"A", "B", "C"},
			wantShares:   []int64{3334, 3333, 3333},
		},
		{
			name:         "remainder of two",
			total:        11,
			participants: []string{"A", "B", "C"},
			wantShares:   []int64{4, 4, 3},
		},
		{
			name:         "single participant takes everything",
			total:        9999,
			participants: []string{"A"},
			wantShares:   []int64{9999},
		},
		{
			name:         "total smaller than participant count",
			total:        2,
			participants: []string{"A", "B", "C"},
			wantShares:   []int64{1, 1, 0},
		},
		{
			name:         "zero total rejected",
			total:        0,
			participants: []string{"A", "B"},
			wantErr:      ErrInvalidAmount,
		},
		{
			name:         "negative total rejected",
			total:        -100,
			participants: []string{"A", "B"},
			wantErr:      ErrInvalidAmount,
		},
		{
			name:         "empty participants rejected",
			total:        100,
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "duplicate participant rejected",
			total:        100,
			participants: []string{"A", "B", "A"},
			wantErr:      ErrDuplicateParticipant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := EqualSplit(tt.total, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("EqualSplit error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EqualSplit failed: %v", err)
			}

			if len(splits) != len(tt.participants) {
				t.Fatalf("got %d splits, want %d", len(splits), len(tt.participants))
			}

			var sum int64
			for i, s := range splits {
				if s.UserID != tt.participants[i] {
					t.Errorf("split %d user = %s, want %s", i, s.UserID, tt.participants[i])
				}
				if s.ShareAmount != tt.wantShares[i] {
					t.Errorf("split %d share = %d, want %d", i, s.ShareAmount, tt.wantShares[i])
				}
				sum += s.ShareAmount
			}
			if sum != tt.total {
				t.Errorf("shares sum to %d, want %d", sum, tt.total)
			}
		})
	}
}

func TestEqualSplitExactness(t *testing.T) {
	// Every share must be floor(total/n) or floor(total/n)+1 and the sum
	// must be exact for awkward totals.
	totals := []int64{1, 7, 99, 100, 101, 33333, 999983}
	participants := []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"}

	for _, total := range totals {
		for n := 1; n <= len(participants); n++ {
			splits, err := EqualSplit(total, participants[:n])
			if err != nil {
				t.Fatalf("EqualSplit(%d, %d people) failed: %v", total, n, err)
			}
			base := total / int64(n)
			var sum int64
			for _, s := range splits {
				if s.ShareAmount != base && s.ShareAmount != base+1 {
					t.Errorf("EqualSplit(%d, %d): share %d not in {%d, %d}", total, n, s.ShareAmount, base, base+1)
				}
				sum += s.ShareAmount
			}
			if sum != total {
				t.Errorf("EqualSplit(%d, %d): shares sum to %d", total, n, sum)
			}
		}
	}
}

func TestValidateCustomSplit(t *testing.T) {
	members := []string{"A", "B", "C"}

	tests := []struct {
		name    string
		total   int64
		splits  []models.Split
		wantErr error
	}{
		{
			name:  "exact sum accepted",
			total: 10000,
			splits: []models.Split{
				{UserID: "A", ShareAmount: 7000},
				{UserID: "B", ShareAmount: 3000},
			},
		},
		{
			name:  "zero share accepted",
			total: 5000,
			splits: []models.Split{
				{UserID: "A", ShareAmount: 5000},
				{UserID: "B", ShareAmount: 0},
			},
		},
		{
			name:  "sum below total rejected",
			total: 10000,
			splits: []models.Split{
				{UserID: "A", ShareAmount: 4000},
				{UserID: "B", ShareAmount: 3000},
			},
			wantErr: ErrSplitMismatch,
		},
		{
			name:  "sum above total rejected",
			total: 10000,
			splits: []models.Split{
				{UserID: "A", ShareAmount: 8000},
				{UserID: "B", ShareAmount: 3000},
			},
			wantErr: ErrSplitMismatch,
		},
		{
			name:  "negative share rejected",
			total: 10000,
			splits: []models.Split{
				{UserID: "A", ShareAmount: 11000},
				{UserID: "B", ShareAmount: -1000},
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name:  "duplicate user rejected",
			total: 10000,
			splits: []models.Split{
				{UserID: "A", ShareAmount: 5000},
				{UserID: "A", ShareAmount: 5000},
			},
			wantErr: ErrDuplicateParticipant,
		},
		{
			name:    "empty splits rejected",
			total:   10000,
			splits:  nil,
			wantErr: ErrNoParticipants,
		},
		{
			name:    "zero total rejected",
			total:   0,
			splits:  []models.Split{{UserID: "A", ShareAmount: 0}},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCustomSplit(tt.total, tt.splits, members)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateCustomSplit failed: %v", err)
			}
		})
	}
}

func TestValidateCustomSplitNonMember(t *testing.T) {
	err := ValidateCustomSplit(100, []models.Split{{UserID: "X", ShareAmount: 100}}, []string{"A", "B"})
	if err == nil {
		t.Fatal("expected error for non-member split, got nil")
	}
}
