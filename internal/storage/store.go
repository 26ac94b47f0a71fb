// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/White-Devil2839/peerflow/internal/models"
)

// ErrNotFound is returned by lookups when the requested record does
// not exist. Implementations wrap it so callers can errors.Is on it.
var ErrNotFound = errors.New("record not found")

// Store is the event-store contract the core reads facts from and
// writes decisions back to. Facts (expenses, payments, votes) are
// append-only; the only updates are expense status transitions, vote
// upserts keyed by natural identity, and member status upserts.
//
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateUser persists a new user. ID and CreatedAt are assigned by
	// the store.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByID retrieves display info for a set of user IDs.
	GetUsersByID(ctx context.Context, ids []string) (map[string]*models.User, error)

	// CreateGroup persists a new group with its initial member list.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members in join order.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// GetGroupByJoinCode retrieves a group by its join code.
	GetGroupByJoinCode(ctx context.Context, code string) (*models.Group, error)

	// AddGroupMember appends a user to a group's member list.
	AddGroupMember(ctx context.Context, groupID, userID string) error

	// ListGroupsForUser retrieves every group the user is a member of.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// CreateExpense persists an expense with its splits.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with splits and approval votes.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListGroupExpenses retrieves a group's expenses, newest first.
	// status filters the result; empty means all statuses.
	ListGroupExpenses(ctx context.Context, groupID string, status models.ExpenseStatus) ([]*models.Expense, error)

	// ListRecurringTemplates retrieves approved recurring expenses
	// across all groups, for the recurring-post scheduler.
	ListRecurringTemplates(ctx context.Context) ([]*models.Expense, error)

	// AddApprovalVote records a single-shot approval vote. Fails if the
	// (expense, voter) pair already voted.
	AddApprovalVote(ctx context.Context, vote models.ApprovalVote) error

	// UpdateExpenseStatus transitions an expense's approval status.
	UpdateExpenseStatus(ctx context.Context, expenseID string, status models.ExpenseStatus) error

	// TouchExpensePosted records when a recurring template last posted
	// an instance.
	TouchExpensePosted(ctx context.Context, expenseID string, postedAt int64) error

	// CreatePayment persists a payment fact.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListGroupPayments retrieves a group's payments, newest first.
	ListGroupPayments(ctx context.Context, groupID string) ([]*models.Payment, error)

	// UpsertOverdueVote records or replaces the (group, target, voter)
	// vote, last write wins.
	UpsertOverdueVote(ctx context.Context, vote models.OverdueVote) error

	// ListOverdueVotes retrieves all live overdue votes in a group.
	ListOverdueVotes(ctx context.Context, groupID string) ([]models.OverdueVote, error)

	// UpsertMemberStatus records or replaces a member's standing.
	UpsertMemberStatus(ctx context.Context, groupID, userID string, status models.MemberStatus) error

	// GetMemberStatus returns the member's standing; an absent record
	// is MemberActive.
	GetMemberStatus(ctx context.Context, groupID, userID string) (models.MemberStatus, error)

	// ListMemberStatuses returns the materialized status records for a
	// group, keyed by user ID. Members without a record are active.
	ListMemberStatuses(ctx context.Context, groupID string) (map[string]models.MemberStatus, error)

	// Close releases any resources held by the store.
	Close() error
}
