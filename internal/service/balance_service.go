package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/White-Devil2839/peerflow/internal/governance"
	"github.com/White-Devil2839/peerflow/internal/ledger"
	"github.com/White-Devil2839/peerflow/internal/models"
	"github.com/White-Devil2839/peerflow/internal/storage"
)

// BalanceService derives balance views from the group's fact log. It
// never stores derived numbers; every read recomputes from approved
// expenses and payments.
type BalanceService struct {
	store  storage.Store
	logger *slog.Logger
}

func NewBalanceService(store storage.Store, logger *slog.Logger) *BalanceService {
	return &BalanceService{store: store, logger: logger}
}

// Overview is the full balance picture for a group: net balances, the
// raw who-owes-whom graph, the minimal settlement plan and threshold
// alerts.
type Overview struct {
	Balances        []models.Balance    `json:"balances"`
	RawGraph        []models.DebtEdge   `json:"rawGraph"`
	SimplifiedGraph []models.Settlement `json:"simplifiedGraph"`
	ThresholdAlerts []models.Alert      `json:"thresholdAlerts"`
}

// groupBalances recomputes net balances for a group from its approved
// expenses and payments.
func groupBalances(ctx context.Context, st storage.Store, group *models.Group) ([]models.Balance, error) {
	expenses, err := st.ListGroupExpenses(ctx, group.ID, models.ExpenseApproved)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	payments, err := st.ListGroupPayments(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	users, err := st.GetUsersByID(ctx, group.Members)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}

	names := make(map[string]string, len(users))
	for id, u := range users {
		names[id] = u.Name
	}
	return ledger.ComputeNetBalances(group.Members, names, expenses, payments)
}

// Balances returns net balances for the group and clears overdue marks
// for members whose debt no longer warrants them. Auto-clearing on
// read keeps standing consistent with the ledger without a background
// job: as soon as any member looks at the balances, settled members
// are restored.
func (s *BalanceService) Balances(ctx context.Context, groupID, actorID string) ([]models.Balance, error) {
	group, err := loadGroup(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, actorID); err != nil {
		return nil, err
	}

	balances, err := groupBalances(ctx, s.store, group)
	if err != nil {
		return nil, err
	}
	if err := s.autoResolve(ctx, group, balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// RawDebtGraph returns the unsimplified debt edges of the group.
func (s *BalanceService) RawDebtGraph(ctx context.Context, groupID, actorID string) ([]models.DebtEdge, error) {
	group, err := loadGroup(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, actorID); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListGroupExpenses(ctx, groupID, models.ExpenseApproved)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return ledger.BuildRawDebtGraph(expenses), nil
}

// Settlements returns the minimal transaction plan that settles the
// group's current balances.
func (s *BalanceService) Settlements(ctx context.Context, groupID, actorID string) ([]models.Settlement, error) {
	balances, err := s.Balances(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	return ledger.MinimizeTransactions(balances)
}

// ThresholdAlerts lists debtors whose debt meets or exceeds the
// group's settlement threshold.
func (s *BalanceService) ThresholdAlerts(ctx context.Context, groupID, actorID string) ([]models.Alert, error) {
	group, err := loadGroup(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, actorID); err != nil {
		return nil, err
	}

	balances, err := groupBalances(ctx, s.store, group)
	if err != nil {
		return nil, err
	}
	return ledger.ComputeThresholdAlerts(balances, group.SettlementThreshold), nil
}

// FullOverview computes everything the balances endpoint serves in one
// pass over the fact log.
func (s *BalanceService) FullOverview(ctx context.Context, groupID, actorID string) (*Overview, error) {
	group, err := loadGroup(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, actorID); err != nil {
		return nil, err
	}

	balances, err := groupBalances(ctx, s.store, group)
	if err != nil {
		return nil, err
	}
	if err := s.autoResolve(ctx, group, balances); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListGroupExpenses(ctx, groupID, models.ExpenseApproved)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	settlements, err := ledger.MinimizeTransactions(balances)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Balances:        balances,
		RawGraph:        ledger.BuildRawDebtGraph(expenses),
		SimplifiedGraph: settlements,
		ThresholdAlerts: ledger.ComputeThresholdAlerts(balances, group.SettlementThreshold),
	}, nil
}

// autoResolve clears overdue marks for members whose net position no
// longer justifies the sanction. Marking overdue requires a vote;
// clearing is automatic once the debt is paid down.
func (s *BalanceService) autoResolve(ctx context.Context, group *models.Group, balances []models.Balance) error {
	statuses, err := s.store.ListMemberStatuses(ctx, group.ID)
	if err != nil {
		return fmt.Errorf("list statuses: %w", err)
	}

	for _, b := range balances {
		if statuses[b.UserID] != models.MemberOverdue {
			continue
		}
		if !governance.ShouldAutoClear(b.Net, group.SettlementThreshold) {
			continue
		}
		if err := s.store.UpsertMemberStatus(ctx, group.ID, b.UserID, models.MemberActive); err != nil {
			return fmt.Errorf("clear overdue status: %w", err)
		}
		s.logger.Info("overdue status auto-cleared",
			"group_id", group.ID, "user_id", b.UserID, "net", b.Net)
	}
	return nil
}
