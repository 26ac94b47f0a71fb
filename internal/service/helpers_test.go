package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/White-Devil2839/peerflow/internal/auth"
	"github.com/White-Devil2839/peerflow/internal/models"
	"github.com/White-Devil2839/peerflow/internal/storage"
	"github.com/White-Devil2839/peerflow/internal/storage/sqlite"
)

// testEnv wires every service against a real temp-file SQLite store so
// tests exercise the same SQL paths production does.
type testEnv struct {
	store    storage.Store
	groups   *GroupService
	expenses *ExpenseService
	payments *PaymentService
	balances *BalanceService
	overdue  *OverdueService
	auth     *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "peerflow-service-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	locks := NewGroupLocks()
	balances := NewBalanceService(store, logger)
	authenticator := auth.NewPasswordAuthenticator(store)
	tokens := auth.NewJWTManager("test-secret", time.Hour)

	return &testEnv{
		store:    store,
		groups:   NewGroupService(store, 50000, logger),
		expenses: NewExpenseService(store, locks, logger),
		payments: NewPaymentService(store, locks, balances, logger),
		balances: balances,
		overdue:  NewOverdueService(store, locks, logger),
		auth:     NewAuthService(authenticator, tokens, store, logger),
	}
}

func seedUsers(t *testing.T, env *testEnv, names ...string) []string {
	t.Helper()
	ctx := context.Background()
	ids := make([]string, len(names))
	for i, name := range names {
		user := models.NewUser(name+"@test.com", name, "hash")
		if err := env.store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser(%s) failed: %v", name, err)
		}
		ids[i] = user.ID
	}
	return ids
}

// seedGroup creates a group directly in the store with an explicit
// member list and threshold, bypassing the join flow.
func seedGroup(t *testing.T, env *testEnv, threshold int64, members []string) *models.Group {
	t.Helper()
	group := &models.Group{
		Name:                "Trip",
		JoinCode:            newJoinCode(),
		SettlementThreshold: threshold,
		CreatedBy:           members[0],
		Members:             members,
	}
	if err := env.store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return group
}

// seedApprovedExpense stores an already-approved expense so balance
// math can be driven without going through the voting flow.
func seedApprovedExpense(t *testing.T, env *testEnv, groupID, paidBy string, total int64, splits []models.Split) *models.Expense {
	t.Helper()
	expense := &models.Expense{
		GroupID:           groupID,
		CreatedBy:         paidBy,
		Description:       "seed",
		TotalAmount:       total,
		PaidBy:            paidBy,
		Splits:            splits,
		Status:            models.ExpenseApproved,
		RequiredApprovals: 1,
	}
	if err := env.store.CreateExpense(context.Background(), expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return expense
}
