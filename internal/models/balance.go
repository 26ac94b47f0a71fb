package models

// Balance is a member's derived net position in a group.
// Positive = owed money (creditor), negative = owes money (debtor),
// zero = settled. Invariant: nets across a group sum to exactly 0.
type Balance struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Net    int64  `json:"net"`
}

// DebtEdge is a raw, pre-netting pairwise debt: From owes To.
// Used for visualization only, never for settlement math.
type DebtEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

// Settlement is a single minimal payment instruction produced by the
// minimum cash flow algorithm: From pays To the stated amount.
type Settlement struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

// Alert flags a debtor whose outstanding debt meets or exceeds the
// group's settlement threshold.
type Alert struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`

	// AmountOwed is the positive magnitude of the member's debt.
	AmountOwed int64 `json:"amountOwed"`
}
