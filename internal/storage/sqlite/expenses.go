package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/White-Devil2839/peerflow/internal/models"
	"github.com/White-Devil2839/peerflow/internal/storage"
)

// CreateExpense persists an expense with its splits in one transaction.
// Split order is preserved: equal splits assign the remainder to the
// first participants, so index order is part of the contract.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var freq, interval any
	if expense.Recurrence != nil {
		freq = string(expense.Recurrence.Frequency)
		interval = expense.Recurrence.Interval
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, created_by, description, total_amount, paid_by,
		                       status, required_approvals, recurring, recur_frequency,
		                       recur_interval, last_posted_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.CreatedBy, expense.Description,
		expense.TotalAmount, expense.PaidBy, string(expense.Status),
		expense.RequiredApprovals, boolToInt(expense.Recurring), freq, interval,
		0, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, split_index, user_id, share_amount) VALUES (?, ?, ?, ?)",
			expense.ID, i, split.UserID, split.ShareAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense with its splits and approval votes.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense, err := s.scanExpenseRow(s.db.QueryRowContext(ctx,
		expenseColumns+" FROM expenses WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.loadExpenseChildren(ctx, []*models.Expense{expense}); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListGroupExpenses retrieves a group's expenses, newest first.
// An empty status returns all of them.
func (s *SQLiteStore) ListGroupExpenses(ctx context.Context, groupID string, status models.ExpenseStatus) ([]*models.Expense, error) {
	query := expenseColumns + " FROM expenses WHERE group_id = ?"
	args := []any{groupID}
	if status != "" {
		query += " AND status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY created_at DESC, id"

	return s.listExpenses(ctx, query, args...)
}

// ListRecurringTemplates retrieves approved recurring expenses across
// all groups, oldest first.
func (s *SQLiteStore) ListRecurringTemplates(ctx context.Context) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		expenseColumns+" FROM expenses WHERE recurring = 1 AND status = ? ORDER BY created_at, id",
		string(models.ExpenseApproved),
	)
}

// AddApprovalVote records a single-shot approval vote. The primary key
// on (expense_id, voter_id) makes double voting a constraint error.
func (s *SQLiteStore) AddApprovalVote(ctx context.Context, vote models.ApprovalVote) error {
	if vote.CreatedAt == 0 {
		vote.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO approval_votes (expense_id, voter_id, vote, created_at) VALUES (?, ?, ?, ?)",
		vote.ExpenseID, vote.VoterID, string(vote.Vote), vote.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert approval vote: %w", err)
	}
	return nil
}

// UpdateExpenseStatus transitions an expense's approval status.
func (s *SQLiteStore) UpdateExpenseStatus(ctx context.Context, expenseID string, status models.ExpenseStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET status = ? WHERE id = ?",
		string(status), expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense not found: %s", expenseID)
	}
	return nil
}

// TouchExpensePosted records when a recurring template last posted.
func (s *SQLiteStore) TouchExpensePosted(ctx context.Context, expenseID string, postedAt int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET last_posted_at = ? WHERE id = ?",
		postedAt, expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to touch expense: %w", err)
	}
	return nil
}

const expenseColumns = `SELECT id, group_id, created_by, description, total_amount, paid_by,
       status, required_approvals, recurring, recur_frequency, recur_interval,
       last_posted_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanExpenseRow(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var status string
	var recurring int
	var freq sql.NullString
	var interval sql.NullInt64
	var lastPosted int64

	err := row.Scan(&expense.ID, &expense.GroupID, &expense.CreatedBy, &expense.Description,
		&expense.TotalAmount, &expense.PaidBy, &status, &expense.RequiredApprovals,
		&recurring, &freq, &interval, &lastPosted, &expense.CreatedAt)
	if err != nil {
		return nil, err
	}

	expense.Status = models.ExpenseStatus(status)
	expense.Recurring = recurring != 0
	if expense.Recurring && freq.Valid {
		expense.Recurrence = &models.Recurrence{
			Frequency: models.RecurrenceFrequency(freq.String),
			Interval:  int(interval.Int64),
		}
	}
	expense.LastPostedAt = lastPosted
	return expense, nil
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := s.scanExpenseRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if err := s.loadExpenseChildren(ctx, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// loadExpenseChildren fills in splits and approval votes.
func (s *SQLiteStore) loadExpenseChildren(ctx context.Context, expenses []*models.Expense) error {
	for _, expense := range expenses {
		rows, err := s.db.QueryContext(ctx,
			"SELECT user_id, share_amount FROM expense_splits WHERE expense_id = ? ORDER BY split_index",
			expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get splits: %w", err)
		}
		for rows.Next() {
			var split models.Split
			if err := rows.Scan(&split.UserID, &split.ShareAmount); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan split: %w", err)
			}
			expense.Splits = append(expense.Splits, split)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("failed to iterate splits: %w", err)
		}
		rows.Close()

		voteRows, err := s.db.QueryContext(ctx,
			"SELECT voter_id, vote, created_at FROM approval_votes WHERE expense_id = ? ORDER BY created_at, voter_id",
			expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get approval votes: %w", err)
		}
		for voteRows.Next() {
			vote := models.ApprovalVote{ExpenseID: expense.ID}
			var choice string
			if err := voteRows.Scan(&vote.VoterID, &choice, &vote.CreatedAt); err != nil {
				voteRows.Close()
				return fmt.Errorf("failed to scan approval vote: %w", err)
			}
			vote.Vote = models.VoteChoice(choice)
			expense.Approvals = append(expense.Approvals, vote)
		}
		if err := voteRows.Err(); err != nil {
			voteRows.Close()
			return fmt.Errorf("failed to iterate approval votes: %w", err)
		}
		voteRows.Close()
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
