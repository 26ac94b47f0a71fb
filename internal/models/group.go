package models

// Group represents a set of users splitting expenses together.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Goa Trip 2026").
	Name string `json:"name"`

	// JoinCode is the short code other users present to join the group.
	JoinCode string `json:"joinCode"`

	// PasswordHash is the optional bcrypt hash of the group password.
	// Empty means the group is joinable with the code alone.
	PasswordHash string `json:"-"`

	// SettlementThreshold is the debt level (minor units) at which a
	// member starts triggering threshold alerts and becomes eligible
	// for overdue sanctioning. Zero means "alert on any debt".
	SettlementThreshold int64 `json:"settlementThreshold"`

	// CreatedBy is the user ID of the group creator.
	CreatedBy string `json:"createdBy"`

	// Members is the list of member user IDs, in join order.
	Members []string `json:"members"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}

// HasMember reports whether the given user ID is a member of the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}
