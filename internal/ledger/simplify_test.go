package ledger

import (
	"errors"
	"reflect"
	"testing"

	"github.com/White-Devil2839/peerflow/internal/models"
)

func TestMinimizeTransactions(t *testing.T) {
	tests := []struct {
		name     string
		balances []models.Balance
		want     []models.Settlement
	}{
		{
			name: "one creditor two debtors",
			balances: []models.Balance{
				{UserID: "A", Net: 20000},
				{UserID: "B", Net: -10000},
				{UserID: "C", Net: -10000},
			},
			want: []models.Settlement{
				{From: "B", To: "A", Amount: 10000},
				{From: "C", To: "A", Amount: 10000},
			},
		},
		{
			name: "two creditors one debtor",
			balances: []models.Balance{
				{UserID: "A", Net: 10000},
				{UserID: "B", Net: 5000},
				{UserID: "C", Net: -15000},
			},
			want: []models.Settlement{
				{From: "C", To: "A", Amount: 10000},
				{From: "C", To: "B", Amount: 5000},
			},
		},
		{
			name: "after partial payment",
			balances: []models.Balance{
				{UserID: "A", Net: 15000},
				{UserID: "B", Net: -5000},
				{UserID: "C", Net: -10000},
			},
			want: []models.Settlement{
				{From: "C", To: "A", Amount: 10000},
				{From: "B", To: "A", Amount: 5000},
			},
		},
		{
			name: "all settled produces nothing",
			balances: []models.Balance{
				{UserID: "A", Net: 0},
				{UserID: "B", Net: 0},
			},
			want: nil,
		},
		{
			name:     "empty input produces nothing",
			balances: nil,
			want:     nil,
		},
		{
			name: "ties keep input order",
			balances: []models.Balance{
				{UserID: "A", Net: -5000},
				{UserID: "B", Net: -5000},
				{UserID: "C", Net: 5000},
				{UserID: "D", Net: 5000},
			},
			want: []models.Settlement{
				{From: "A", To: "C", Amount: 5000},
				{From: "B", To: "D", Amount: 5000},
			},
		},
		{
			name: "chain collapses to two edges",
			balances: []models.Balance{
				{UserID: "A", Net: 30000},
				{UserID: "B", Net: -12000},
				{UserID: "C", Net: -18000},
			},
			want: []models.Settlement{
				{From: "C", To: "A", Amount: 18000},
				{From: "B", To: "A", Amount: 12000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MinimizeTransactions(tt.balances)
			if err != nil {
				t.Fatalf("MinimizeTransactions failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("settlements = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMinimizeTransactionsProperties(t *testing.T) {
	balances := []models.Balance{
		{UserID: "A", Net: 17345},
		{UserID: "B", Net: -9200},
		{UserID: "C", Net: 4855},
		{UserID: "D", Net: -13000},
		{UserID: "E", Net: 0},
	}

	settlements, err := MinimizeTransactions(balances)
	if err != nil {
		t.Fatalf("MinimizeTransactions failed: %v", err)
	}

	// At most n-1 edges for n non-zero participants.
	nonZero := 0
	for _, b := range balances {
		if b.Net != 0 {
			nonZero++
		}
	}
	if len(settlements) > nonZero-1 {
		t.Errorf("got %d settlements for %d non-zero members, want <= %d", len(settlements), nonZero, nonZero-1)
	}

	// Applying every settlement must zero every balance.
	net := netsOf(balances)
	for _, s := range settlements {
		if s.Amount <= 0 {
			t.Errorf("settlement %v has non-positive amount", s)
		}
		net[s.From] += s.Amount
		net[s.To] -= s.Amount
	}
	for user, n := range net {
		if n != 0 {
			t.Errorf("user %s left with net %d after settlements", user, n)
		}
	}
}

func TestMinimizeTransactionsIntegrity(t *testing.T) {
	// A non-zero-sum input can never fully settle.
	_, err := MinimizeTransactions([]models.Balance{
		{UserID: "A", Net: 10000},
		{UserID: "B", Net: -4000},
	})
	if !errors.Is(err, ErrSimplifyIntegrity) {
		t.Fatalf("error = %v, want ErrSimplifyIntegrity", err)
	}
}

func TestMinimizeTransactionsDeterministic(t *testing.T) {
	balances := []models.Balance{
		{UserID: "A", Net: 7000},
		{UserID: "B", Net: -3000},
		{UserID: "C", Net: -4000},
	}

	first, err := MinimizeTransactions(balances)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := MinimizeTransactions(balances)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("runs differ: %v vs %v", first, second)
	}
}
