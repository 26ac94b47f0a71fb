package models

// ExpenseStatus is the lifecycle state of an expense.
// Transitions are pending → approved or pending → rejected, both terminal.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// VoteChoice is an approval vote value.
type VoteChoice string

const (
	VoteApprove VoteChoice = "approve"
	VoteReject  VoteChoice = "reject"
)

// Valid reports whether the choice is one of the two known values.
func (v VoteChoice) Valid() bool {
	return v == VoteApprove || v == VoteReject
}

// Split is one member's share of an expense.
// Invariant: the shares of an expense sum to exactly TotalAmount.
type Split struct {
	// UserID is the member this share belongs to.
	UserID string `json:"userId"`

	// ShareAmount is the share in minor units, >= 0.
	ShareAmount int64 `json:"shareAmount"`
}

// ApprovalVote is a single-shot vote on a pending expense.
// One vote per (expense, voter); re-voting is an error.
type ApprovalVote struct {
	ExpenseID string     `json:"expenseId"`
	VoterID   string     `json:"voterId"`
	Vote      VoteChoice `json:"vote"`
	CreatedAt int64      `json:"createdAt"`
}

// RecurrenceFrequency enumerates supported recurring-expense cadences.
type RecurrenceFrequency string

const (
	FrequencyDaily   RecurrenceFrequency = "daily"
	FrequencyWeekly  RecurrenceFrequency = "weekly"
	FrequencyMonthly RecurrenceFrequency = "monthly"
)

// Valid reports whether the frequency is a known cadence.
func (f RecurrenceFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Recurrence describes how often a recurring expense re-posts.
type Recurrence struct {
	Frequency RecurrenceFrequency `json:"frequency"`

	// Interval multiplies the frequency (every N days/weeks/months), >= 1.
	Interval int `json:"interval"`
}

// Expense is a shared cost recorded against a group. Expenses are never
// deleted; they are historical ledger entries whose only mutation is the
// approval status transition driven by votes.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to.
	GroupID string `json:"groupId"`

	// CreatedBy is the user who recorded the expense.
	CreatedBy string `json:"createdBy"`

	// Description is a short human-readable label.
	Description string `json:"description"`

	// TotalAmount is the full expense amount in minor units, >= 1.
	TotalAmount int64 `json:"totalAmount"`

	// PaidBy is the member who fronted the money.
	PaidBy string `json:"paidBy"`

	// Splits distribute TotalAmount across participants.
	Splits []Split `json:"splits"`

	// Status gates ledger visibility: only approved expenses count
	// toward balances.
	Status ExpenseStatus `json:"status"`

	// Approvals are the votes cast so far.
	Approvals []ApprovalVote `json:"approvals"`

	// RequiredApprovals is ceil(groupSize/2), frozen at creation time.
	RequiredApprovals int `json:"requiredApprovals"`

	// Recurring marks the expense as a template for internal/recur.
	Recurring bool `json:"recurring"`

	// Recurrence is the cadence; nil unless Recurring.
	Recurrence *Recurrence `json:"recurrence,omitempty"`

	// LastPostedAt is the Unix timestamp of the last instance posted
	// from this recurring template; 0 if none yet.
	LastPostedAt int64 `json:"lastPostedAt,omitempty"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`
}

// ApproveCount returns the number of approve votes cast.
func (e *Expense) ApproveCount() int {
	n := 0
	for _, a := range e.Approvals {
		if a.Vote == VoteApprove {
			n++
		}
	}
	return n
}

// RejectCount returns the number of reject votes cast.
func (e *Expense) RejectCount() int {
	n := 0
	for _, a := range e.Approvals {
		if a.Vote == VoteReject {
			n++
		}
	}
	return n
}

// HasVoted reports whether the given user already voted on this expense.
func (e *Expense) HasVoted(userID string) bool {
	for _, a := range e.Approvals {
		if a.VoterID == userID {
			return true
		}
	}
	return false
}
