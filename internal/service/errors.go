package service

import "errors"

// Service-level validation errors. All are recoverable at the call
// boundary: the server layer maps them to 4xx responses and no partial
// state is committed when they fire.
var (
	// ErrNotFound wraps missing groups, expenses and users.
	ErrNotFound = errors.New("not found")

	// ErrNotAMember means the acting user is outside the group.
	ErrNotAMember = errors.New("you are not a member of this group")

	// ErrTargetNotMember means a referenced party is outside the group.
	ErrTargetNotMember = errors.New("user is not a member of this group")

	// ErrGovernanceRestricted means the actor is currently overdue and
	// attempted a blocked action. Overdue members may still settle
	// debts and view data.
	ErrGovernanceRestricted = errors.New("overdue users are restricted from governance actions but may still settle debts")

	// ErrAlreadyDecided means a vote was cast on a non-pending expense.
	// Decided expenses are terminal; there is no reopening.
	ErrAlreadyDecided = errors.New("expense is already decided")

	// ErrDuplicateVote means the voter already voted on this expense.
	// Approval votes are single-shot by design; only overdue votes are
	// upsertable.
	ErrDuplicateVote = errors.New("you have already voted on this expense")

	// ErrInvalidVote means an unknown vote value was supplied.
	ErrInvalidVote = errors.New("invalid vote value")

	// ErrValidation covers malformed request fields with no more
	// specific sentinel.
	ErrValidation = errors.New("invalid request")

	// ErrSelfReference covers self-payments and self-overdue-votes.
	ErrSelfReference = errors.New("action cannot target yourself")

	// ErrRoleMismatch means a payment's debtor is not actually in debt
	// or its creditor is not actually owed.
	ErrRoleMismatch = errors.New("payment parties do not match their debt roles")

	// ErrOverpayment means a payment exceeds what the debtor owes or
	// the creditor is owed.
	ErrOverpayment = errors.New("payment amount exceeds maximum payable")

	// ErrAlreadyMember means a join attempt by an existing member.
	ErrAlreadyMember = errors.New("you are already a member of this group")

	// ErrGroupPassword means a wrong or missing group password.
	ErrGroupPassword = errors.New("invalid group password")
)
