// Package models defines the core domain entities for PeerFlow.
//
// # Money
//
// Every monetary value in these models is an int64 amount of integer
// minor units (paise). No float ever touches the ledger; conversion to
// display units is a client concern.
//
// # Facts vs derived state
//
// Expense, Payment, ApprovalVote and OverdueVote are append-only facts.
// Balance, DebtEdge, Settlement and threshold Alerts are pure functions
// of those facts, recomputed on every read by internal/ledger; they are
// never persisted authoritatively, which removes cache-invalidation bugs
// by construction.
//
// # Design principles
//
// 1. **ID strings over pointers**: entities reference each other by UUID
// strings to avoid circular references.
// 2. **Statuses are total functions**: a member with no status row is
// "active"; absence is never an error.
package models
