package ledger

import (
	"sort"

	"github.com/White-Devil2839/peerflow/internal/models"
)

// ComputeThresholdAlerts flags every debtor whose debt magnitude meets
// or exceeds the threshold; the boundary is inclusive, and a threshold
// of 0 alerts on any debt at all. Creditors and settled members never
// alert. Results are sorted descending by amount owed, ties keeping
// input order.
func ComputeThresholdAlerts(balances []models.Balance, threshold int64) []models.Alert {
	var alerts []models.Alert
	for _, b := range balances {
		if b.Net >= 0 {
			continue
		}
		owed := -b.Net
		if owed >= threshold {
			alerts = append(alerts, models.Alert{UserID: b.UserID, Name: b.Name, AmountOwed: owed})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].AmountOwed > alerts[j].AmountOwed
	})
	return alerts
}
