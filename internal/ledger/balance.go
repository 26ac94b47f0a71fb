package ledger

import (
	"fmt"

	"github.com/White-Devil2839/peerflow/internal/models"
)

// ComputeNetBalances folds approved expenses and payments into a net
// balance per member. Every group member appears in the result, members
// with no activity at 0. Order follows the members slice.
//
// Per expense: the payer's net rises by the total they fronted, each
// split member's net drops by their share. Per payment: the debtor's
// net rises toward zero, the creditor's drops toward zero.
//
// Expenses that are not approved are skipped; pending and rejected
// expenses have zero effect on money owed.
//
// Post-condition: the nets sum to exactly 0. A violation returns
// ErrLedgerIntegrity and indicates a bug upstream (e.g. a malformed
// split); it must never be silently tolerated.
func ComputeNetBalances(members []string, names map[string]string, expenses []*models.Expense, payments []*models.Payment) ([]models.Balance, error) {
	net := make(map[string]int64, len(members))
	for _, m := range members {
		net[m] = 0
	}

	for _, e := range expenses {
		if e.Status != models.ExpenseApproved {
			continue
		}
		if _, ok := net[e.PaidBy]; ok {
			net[e.PaidBy] += e.TotalAmount
		}
		for _, s := range e.Splits {
			if _, ok := net[s.UserID]; ok {
				net[s.UserID] -= s.ShareAmount
			}
		}
	}

	for _, p := range payments {
		if _, ok := net[p.FromUserID]; ok {
			net[p.FromUserID] += p.Amount
		}
		if _, ok := net[p.ToUserID]; ok {
			net[p.ToUserID] -= p.Amount
		}
	}

	var total int64
	for _, v := range net {
		total += v
	}
	if total != 0 {
		return nil, fmt.Errorf("%w: sum is %d", ErrLedgerIntegrity, total)
	}

	balances := make([]models.Balance, len(members))
	for i, m := range members {
		balances[i] = models.Balance{UserID: m, Name: names[m], Net: net[m]}
	}
	return balances, nil
}
