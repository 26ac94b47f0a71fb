package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/White-Devil2839/peerflow/internal/ledger"
	"github.com/White-Devil2839/peerflow/internal/models"
	"github.com/White-Devil2839/peerflow/internal/storage"
)

// ExpenseService handles expense submission and approval voting.
type ExpenseService struct {
	store  storage.Store
	locks  *GroupLocks
	logger *slog.Logger
}

func NewExpenseService(store storage.Store, locks *GroupLocks, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{store: store, locks: locks, logger: logger}
}

// CreateExpenseInput is the submission payload. Either Participants
// (equal split) or Splits (custom split) is set, not both.
type CreateExpenseInput struct {
	GroupID      string
	Description  string
	TotalAmount  int64
	PaidBy       string
	Participants []string
	Splits       []models.Split
	Recurring    bool
	Recurrence   *models.Recurrence
}

// Create validates and persists a new expense. The expense starts
// pending; in a single-member group the creator's own majority is
// already met, so it is stored approved outright.
func (s *ExpenseService) Create(ctx context.Context, in CreateExpenseInput, actorID string) (*models.Expense, error) {
	group, err := loadGroup(ctx, s.store, in.GroupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, actorID); err != nil {
		return nil, err
	}
	if err := requireActive(ctx, s.store, group.ID, actorID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if !group.HasMember(in.PaidBy) {
		return nil, fmt.Errorf("payer: %w", ErrTargetNotMember)
	}

	var splits []models.Split
	switch {
	case len(in.Splits) > 0:
		if err := ledger.ValidateCustomSplit(in.TotalAmount, in.Splits, group.Members); err != nil {
			return nil, err
		}
		splits = in.Splits
	case len(in.Participants) > 0:
		for _, p := range in.Participants {
			if !group.HasMember(p) {
				return nil, fmt.Errorf("participant %s: %w", p, ErrTargetNotMember)
			}
		}
		splits, err = ledger.EqualSplit(in.TotalAmount, in.Participants)
		if err != nil {
			return nil, err
		}
	default:
		// No participant list means everyone shares equally.
		splits, err = ledger.EqualSplit(in.TotalAmount, group.Members)
		if err != nil {
			return nil, err
		}
	}

	if in.Recurring {
		if in.Recurrence == nil || !in.Recurrence.Frequency.Valid() {
			return nil, fmt.Errorf("%w: recurring expense needs a valid frequency", ErrValidation)
		}
		if in.Recurrence.Interval < 1 {
			in.Recurrence.Interval = 1
		}
	}

	required := ledger.RequiredApprovals(len(group.Members))
	expense := &models.Expense{
		GroupID:           group.ID,
		CreatedBy:         actorID,
		Description:       strings.TrimSpace(in.Description),
		TotalAmount:       in.TotalAmount,
		PaidBy:            in.PaidBy,
		Splits:            splits,
		Status:            models.ExpensePending,
		RequiredApprovals: required,
		Recurring:         in.Recurring,
		Recurrence:        in.Recurrence,
	}
	if len(group.Members) == 1 {
		expense.Status = models.ExpenseApproved
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	s.logger.Info("expense created",
		"expense_id", expense.ID, "group_id", group.ID,
		"amount", expense.TotalAmount, "status", expense.Status)
	return expense, nil
}

// Vote records an approval vote and resolves the expense status from
// the full tally. Votes are final: no changing, no withdrawing, and no
// voting once the expense leaves pending.
func (s *ExpenseService) Vote(ctx context.Context, expenseID, voterID string, choice models.VoteChoice) (*models.Expense, error) {
	if !choice.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVote, choice)
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load expense: %w", err)
	}

	unlock := s.locks.Lock(expense.GroupID)
	defer unlock()

	// Re-read under the lock so the tally is computed against the
	// latest vote set.
	expense, err = s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("load expense: %w", err)
	}
	if expense.Status != models.ExpensePending {
		return nil, ErrAlreadyDecided
	}

	group, err := loadGroup(ctx, s.store, expense.GroupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, voterID); err != nil {
		return nil, err
	}
	if err := requireActive(ctx, s.store, group.ID, voterID); err != nil {
		return nil, err
	}
	if expense.HasVoted(voterID) {
		return nil, ErrDuplicateVote
	}

	vote := models.ApprovalVote{
		ExpenseID: expense.ID,
		VoterID:   voterID,
		Vote:      choice,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.store.AddApprovalVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("record vote: %w", err)
	}
	expense.Approvals = append(expense.Approvals, vote)

	status := ledger.ResolveApproval(expense.Approvals, expense.RequiredApprovals, len(group.Members))
	if status != expense.Status {
		if err := s.store.UpdateExpenseStatus(ctx, expense.ID, status); err != nil {
			return nil, fmt.Errorf("update status: %w", err)
		}
		expense.Status = status
		s.logger.Info("expense decided",
			"expense_id", expense.ID, "group_id", group.ID, "status", status)
	}
	return expense, nil
}

// ListGroup returns a group's expenses, optionally filtered by status.
func (s *ExpenseService) ListGroup(ctx context.Context, groupID, actorID string, status models.ExpenseStatus) ([]*models.Expense, error) {
	group, err := loadGroup(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, actorID); err != nil {
		return nil, err
	}
	expenses, err := s.store.ListGroupExpenses(ctx, groupID, status)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Get returns a single expense, visible to group members only.
func (s *ExpenseService) Get(ctx context.Context, expenseID, actorID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load expense: %w", err)
	}
	group, err := loadGroup(ctx, s.store, expense.GroupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, actorID); err != nil {
		return nil, err
	}
	return expense, nil
}
