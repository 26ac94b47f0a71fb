package models

// Payment is a partial settlement between two members. Immutable once
// created. Invariant: FromUserID != ToUserID and Amount >= 1.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id"`

	// GroupID is the group this payment belongs to.
	GroupID string `json:"groupId"`

	// FromUserID is the debtor settling up.
	FromUserID string `json:"fromUserId"`

	// ToUserID is the creditor being paid.
	ToUserID string `json:"toUserId"`

	// Amount is the payment amount in minor units, >= 1.
	Amount int64 `json:"amount"`

	// CreatedBy is the user who recorded the payment.
	CreatedBy string `json:"createdBy"`

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64 `json:"createdAt"`
}
