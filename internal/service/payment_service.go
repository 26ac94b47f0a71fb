package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/White-Devil2839/peerflow/internal/ledger"
	"github.com/White-Devil2839/peerflow/internal/models"
	"github.com/White-Devil2839/peerflow/internal/storage"
)

// PaymentService records settlement payments. Payments are never
// gated by overdue standing: paying down debt is exactly what an
// overdue member is supposed to do.
type PaymentService struct {
	store    storage.Store
	locks    *GroupLocks
	balances *BalanceService
	logger   *slog.Logger
}

func NewPaymentService(store storage.Store, locks *GroupLocks, balances *BalanceService, logger *slog.Logger) *PaymentService {
	return &PaymentService{store: store, locks: locks, balances: balances, logger: logger}
}

// RecordPaymentInput is the payment payload. FromUserID is the debtor,
// ToUserID the creditor; the acting user may record a payment between
// any two members.
type RecordPaymentInput struct {
	GroupID    string
	FromUserID string
	ToUserID   string
	Amount     int64
}

// Record validates and persists a payment. The debtor must actually
// owe money, the creditor must actually be owed, and the amount may
// not exceed what either side can absorb. The check runs under the
// group lock so two concurrent payments cannot both pass against the
// same pre-payment balances.
func (s *PaymentService) Record(ctx context.Context, in RecordPaymentInput, actorID string) (*models.Payment, error) {
	group, err := loadGroup(ctx, s.store, in.GroupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, actorID); err != nil {
		return nil, err
	}
	if !group.HasMember(in.FromUserID) {
		return nil, fmt.Errorf("payer: %w", ErrTargetNotMember)
	}
	if !group.HasMember(in.ToUserID) {
		return nil, fmt.Errorf("payee: %w", ErrTargetNotMember)
	}
	if in.FromUserID == in.ToUserID {
		return nil, fmt.Errorf("%w: payer and payee are the same user", ErrSelfReference)
	}
	if in.Amount < 1 {
		return nil, fmt.Errorf("%w: got %d", ledger.ErrInvalidAmount, in.Amount)
	}

	unlock := s.locks.Lock(group.ID)
	defer unlock()

	balances, err := groupBalances(ctx, s.store, group)
	if err != nil {
		return nil, err
	}
	var fromNet, toNet int64
	for _, b := range balances {
		switch b.UserID {
		case in.FromUserID:
			fromNet = b.Net
		case in.ToUserID:
			toNet = b.Net
		}
	}

	if fromNet >= 0 {
		return nil, fmt.Errorf("%w: %s does not owe money", ErrRoleMismatch, in.FromUserID)
	}
	if toNet <= 0 {
		return nil, fmt.Errorf("%w: %s is not owed money", ErrRoleMismatch, in.ToUserID)
	}

	maxPayable := -fromNet
	if toNet < maxPayable {
		maxPayable = toNet
	}
	if in.Amount > maxPayable {
		return nil, fmt.Errorf("%w: maximum payable is %d", ErrOverpayment, maxPayable)
	}

	payment := &models.Payment{
		GroupID:    group.ID,
		FromUserID: in.FromUserID,
		ToUserID:   in.ToUserID,
		Amount:     in.Amount,
		CreatedBy:  actorID,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	// The payment may have brought the debtor back under the group's
	// threshold, so run the auto-clear pass right away instead of
	// waiting for the next balance read.
	post, err := groupBalances(ctx, s.store, group)
	if err != nil {
		return nil, err
	}
	if err := s.balances.autoResolve(ctx, group, post); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		"payment_id", payment.ID, "group_id", group.ID,
		"from", payment.FromUserID, "to", payment.ToUserID, "amount", payment.Amount)
	return payment, nil
}

// ListGroup returns a group's payments, newest first.
func (s *PaymentService) ListGroup(ctx context.Context, groupID, actorID string) ([]*models.Payment, error) {
	group, err := loadGroup(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, actorID); err != nil {
		return nil, err
	}
	payments, err := s.store.ListGroupPayments(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}
