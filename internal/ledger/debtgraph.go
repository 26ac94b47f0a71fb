package ledger

import "github.com/White-Devil2839/peerflow/internal/models"

// BuildRawDebtGraph derives the pre-netting pairwise debt edges from
// approved expenses: for every split where the member is not the payer,
// an edge split.member → payer of the share amount. Edges with the same
// ordered pair are summed; self-loops are dropped.
//
// Edge order is deterministic: first appearance of the (from, to) pair
// across the expense list. This graph explains who directly owes whom
// and feeds visualization only; settlement math runs on net balances.
func BuildRawDebtGraph(expenses []*models.Expense) []models.DebtEdge {
	type pair struct{ from, to string }

	amounts := make(map[pair]int64)
	var order []pair

	for _, e := range expenses {
		if e.Status != models.ExpenseApproved {
			continue
		}
		for _, s := range e.Splits {
			if s.UserID == e.PaidBy {
				continue
			}
			k := pair{from: s.UserID, to: e.PaidBy}
			if _, ok := amounts[k]; !ok {
				order = append(order, k)
			}
			amounts[k] += s.ShareAmount
		}
	}

	edges := make([]models.DebtEdge, 0, len(order))
	for _, k := range order {
		if amounts[k] <= 0 {
			continue
		}
		edges = append(edges, models.DebtEdge{From: k.from, To: k.to, Amount: amounts[k]})
	}
	return edges
}
