package ledger

import "errors"

// Validation errors are recoverable at the call boundary; the server
// layer maps them to 4xx responses and no partial state is committed.
var (
	// ErrInvalidAmount means a positive integer minor-unit amount was
	// required and something else was supplied.
	ErrInvalidAmount = errors.New("amount must be a positive integer in minor units")

	// ErrSplitMismatch means a custom split's shares do not sum to the
	// expense total.
	ErrSplitMismatch = errors.New("sum of shares does not equal total amount")

	// ErrDuplicateParticipant means the same member appears twice in a
	// split or participant list.
	ErrDuplicateParticipant = errors.New("duplicate participant in split")

	// ErrNoParticipants means a split was requested with no one to
	// split between.
	ErrNoParticipants = errors.New("at least one participant is required")
)

// Integrity errors are fatal. They indicate upstream data corruption
// (e.g. a malformed split slipped past validation) and must abort the
// request, never be silently corrected.
var (
	// ErrLedgerIntegrity means the nets of a group did not sum to zero.
	ErrLedgerIntegrity = errors.New("ledger integrity violation: net balances do not sum to zero")

	// ErrSimplifyIntegrity means the greedy settlement pass left a
	// creditor or debtor unzeroed.
	ErrSimplifyIntegrity = errors.New("simplification integrity violation: unresolved balance after settlement")
)
