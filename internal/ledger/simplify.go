package ledger

import (
	"fmt"
	"sort"

	"github.com/White-Devil2839/peerflow/internal/models"
)

type party struct {
	userID    string
	remaining int64
}

// MinimizeTransactions converts net balances into the minimum cash flow:
// the smallest set of settlement instructions that drives every non-zero
// balance to exactly zero.
//
// Deterministic greedy:
//  1. Partition into creditors (net > 0) and debtors (net < 0, stored as
//     positive magnitude); settled members are dropped.
//  2. Sort both lists descending by magnitude. Ties keep input order.
//  3. Two-pointer match: settle min(creditor, debtor) between the current
//     largest of each side, advance whichever side zeroes out.
//
// Produces at most n-1 edges for n non-zero participants. Any leftover
// after the match means the input did not sum to zero and is reported
// as ErrSimplifyIntegrity.
func MinimizeTransactions(balances []models.Balance) ([]models.Settlement, error) {
	var creditors, debtors []party
	for _, b := range balances {
		switch {
		case b.Net > 0:
			creditors = append(creditors, party{userID: b.UserID, remaining: b.Net})
		case b.Net < 0:
			debtors = append(debtors, party{userID: b.UserID, remaining: -b.Net})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining > creditors[j].remaining
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining > debtors[j].remaining
	})

	var settlements []models.Settlement
	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		creditor := &creditors[ci]
		debtor := &debtors[di]

		settle := creditor.remaining
		if debtor.remaining < settle {
			settle = debtor.remaining
		}

		if settle > 0 {
			settlements = append(settlements, models.Settlement{
				From:   debtor.userID,
				To:     creditor.userID,
				Amount: settle,
			})
		}

		creditor.remaining -= settle
		debtor.remaining -= settle

		if creditor.remaining == 0 {
			ci++
		}
		if debtor.remaining == 0 {
			di++
		}
	}

	for _, c := range creditors {
		if c.remaining != 0 {
			return nil, fmt.Errorf("%w: creditor %s has %d left", ErrSimplifyIntegrity, c.userID, c.remaining)
		}
	}
	for _, d := range debtors {
		if d.remaining != 0 {
			return nil, fmt.Errorf("%w: debtor %s has %d left", ErrSimplifyIntegrity, d.userID, d.remaining)
		}
	}

	return settlements, nil
}
