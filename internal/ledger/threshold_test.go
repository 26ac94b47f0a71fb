package ledger

import (
	"testing"

	"github.com/White-Devil2839/peerflow/internal/models"
)

func TestComputeThresholdAlerts(t *testing.T) {
	balances := []models.Balance{
		{UserID: "A", Name: "Alice", Net: 10000},
		{UserID: "B", Name: "Bob", Net: -6000},
		{UserID: "C", Name: "Carol", Net: -4000},
	}

	t.Run("debtor meeting threshold alerts", func(t *testing.T) {
		alerts := ComputeThresholdAlerts(balances, 5000)
		if len(alerts) != 1 {
			t.Fatalf("got %d alerts, want 1", len(alerts))
		}
		if alerts[0].UserID != "B" || alerts[0].AmountOwed != 6000 {
			t.Errorf("alert = %+v, want B owing 6000", alerts[0])
		}
	})

	t.Run("creditors never alert", func(t *testing.T) {
		for _, a := range ComputeThresholdAlerts(balances, 0) {
			if a.UserID == "A" {
				t.Error("creditor A should never alert")
			}
		}
	})

	t.Run("threshold zero alerts every debtor", func(t *testing.T) {
		alerts := ComputeThresholdAlerts(balances, 0)
		if len(alerts) != 2 {
			t.Fatalf("got %d alerts, want 2", len(alerts))
		}
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		border := []models.Balance{
			{UserID: "A", Net: 5000},
			{UserID: "B", Net: -5000},
		}
		alerts := ComputeThresholdAlerts(border, 5000)
		if len(alerts) != 1 || alerts[0].UserID != "B" {
			t.Fatalf("debt equal to threshold must alert, got %v", alerts)
		}
	})

	t.Run("sorted descending by amount owed", func(t *testing.T) {
		many := []models.Balance{
			{UserID: "A", Net: 20000},
			{UserID: "B", Net: -3000},
			{UserID: "C", Net: -8000},
			{UserID: "D", Net: -9000},
		}
		alerts := ComputeThresholdAlerts(many, 0)
		if len(alerts) != 3 {
			t.Fatalf("got %d alerts, want 3", len(alerts))
		}
		for i, want := range []string{"D", "C", "B"} {
			if alerts[i].UserID != want {
				t.Errorf("alert %d = %s, want %s", i, alerts[i].UserID, want)
			}
		}
	})

	t.Run("all settled means no alerts", func(t *testing.T) {
		settled := []models.Balance{{UserID: "A", Net: 0}, {UserID: "B", Net: 0}}
		if alerts := ComputeThresholdAlerts(settled, 0); len(alerts) != 0 {
			t.Errorf("got %d alerts for settled group, want 0", len(alerts))
		}
	})
}
