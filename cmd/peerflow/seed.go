package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/White-Devil2839/peerflow/internal/config"
	"github.com/White-Devil2839/peerflow/internal/models"
	"github.com/White-Devil2839/peerflow/internal/storage/sqlite"
	"github.com/White-Devil2839/peerflow/pkg/logging"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo users, groups and expenses",
	Long: "Creates five demo users (password: demo1234), a trip group with\n" +
		"one-time expenses and a flatmates group with recurring bills.",
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedExpense struct {
	createdBy   int
	description string
	total       int64
	paidBy      int
	shares      map[int]int64
	recurrence  *models.Recurrence
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	logger := logging.SetupWithLevel(logging.ParseLevel(cfg.Log.Level))

	store, err := sqlite.New(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer store.Close()

	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	names := []struct{ name, email string }{
		{"Aarav Sharma", "aarav@demo.com"},
		{"Priya Patel", "priya@demo.com"},
		{"Rohan Gupta", "rohan@demo.com"},
		{"Sneha Iyer", "sneha@demo.com"},
		{"Kabir Mehta", "kabir@demo.com"},
	}
	ids := make([]string, len(names))
	for i, n := range names {
		user := models.NewUser(n.email, n.name, string(hash))
		if err := store.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", n.email, err)
		}
		ids[i] = user.ID
	}
	logger.Info("demo users created", "count", len(ids))

	// Trip group: everyone, messy one-time expenses.
	goa := &models.Group{
		Name:                "Goa Trip 2026",
		JoinCode:            "GOATRIP",
		SettlementThreshold: 50000,
		CreatedBy:           ids[0],
		Members:             ids,
	}
	if err := store.CreateGroup(ctx, goa); err != nil {
		return fmt.Errorf("create group: %w", err)
	}

	all := func(share int64) map[int]int64 {
		m := make(map[int]int64, 5)
		for i := range ids {
			m[i] = share
		}
		return m
	}
	goaExpenses := []seedExpense{
		{0, "Hotel booking (2 nights)", 250000, 0, all(50000), nil},
		{1, "Beach shack dinner", 80000, 1, all(16000), nil},
		{2, "Scooter rentals (3 bikes)", 120000, 2, map[int]int64{2: 40000, 3: 40000, 4: 40000}, nil},
		{3, "Groceries & snacks", 65000, 3, all(13000), nil},
		{4, "Water sports package", 180000, 4, map[int]int64{0: 45000, 2: 45000, 3: 45000, 4: 45000}, nil},
		{0, "Airport taxi", 40000, 0, map[int]int64{0: 20000, 1: 20000}, nil},
		{1, "Club Cubana entry", 35000, 1, all(7000), nil},
		{2, "Dolphin boat ride", 95000, 2, all(19000), nil},
		{3, "Souvenir shopping", 27500, 3, map[int]int64{3: 9167, 1: 9167, 4: 9166}, nil},
		{4, "Farewell lunch", 50000, 4, all(10000), nil},
	}
	if err := seedExpenses(ctx, store, goa, ids, goaExpenses); err != nil {
		return err
	}

	// Flatmates group: four members, monthly and weekly recurring bills.
	flatIDs := ids[:4]
	flat := &models.Group{
		Name:                "Flatmates Monthly",
		JoinCode:            "FLAT2026",
		SettlementThreshold: 100000,
		CreatedBy:           ids[1],
		Members:             flatIDs,
	}
	if err := store.CreateGroup(ctx, flat); err != nil {
		return fmt.Errorf("create group: %w", err)
	}

	monthly := &models.Recurrence{Frequency: models.FrequencyMonthly, Interval: 1}
	weekly := &models.Recurrence{Frequency: models.FrequencyWeekly, Interval: 1}
	four := func(share int64) map[int]int64 {
		m := make(map[int]int64, 4)
		for i := range flatIDs {
			m[i] = share
		}
		return m
	}
	flatExpenses := []seedExpense{
		{0, "Rent", 4000000, 0, four(1000000), monthly},
		{1, "WiFi bill", 150000, 1, four(37500), monthly},
		{2, "Electricity bill", 320000, 2, four(80000), monthly},
		{3, "Maid salary", 600000, 3, four(150000), monthly},
		{0, "Kitchen supplies", 85000, 0, four(21250), nil},
		{1, "House party food & drinks", 420000, 1, map[int]int64{0: 140000, 1: 140000, 3: 140000}, nil},
		{2, "Weekly groceries", 250000, 2, four(62500), weekly},
		{3, "Water purifier AMC", 200000, 3, four(50000), nil},
	}
	if err := seedExpenses(ctx, store, flat, ids, flatExpenses); err != nil {
		return err
	}

	logger.Info("seed complete",
		"users", len(ids), "groups", 2,
		"expenses", len(goaExpenses)+len(flatExpenses))
	fmt.Println("Demo credentials (password demo1234):")
	for _, n := range names {
		fmt.Printf("  %s\n", n.email)
	}
	return nil
}

// seedExpenses stores a batch as already approved so balances are live
// immediately.
func seedExpenses(ctx context.Context, store *sqlite.SQLiteStore, group *models.Group, ids []string, batch []seedExpense) error {
	required := (len(group.Members) + 1) / 2
	for _, e := range batch {
		splits := make([]models.Split, 0, len(e.shares))
		// Walk indexes in member order so split order is stable.
		for i := range ids {
			if share, ok := e.shares[i]; ok {
				splits = append(splits, models.Split{UserID: ids[i], ShareAmount: share})
			}
		}
		expense := &models.Expense{
			GroupID:           group.ID,
			CreatedBy:         ids[e.createdBy],
			Description:       e.description,
			TotalAmount:       e.total,
			PaidBy:            ids[e.paidBy],
			Splits:            splits,
			Status:            models.ExpenseApproved,
			RequiredApprovals: required,
			Recurring:         e.recurrence != nil,
			Recurrence:        e.recurrence,
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			return fmt.Errorf("create expense %q: %w", e.description, err)
		}
	}
	return nil
}
