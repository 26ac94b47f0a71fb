package models

// MemberStatus is the per-group standing of a member.
// Unlike expense approval, this state is reversible in both directions:
// by vote and by automatic clearing once debt resolves.
type MemberStatus string

const (
	MemberActive  MemberStatus = "active"
	MemberOverdue MemberStatus = "overdue"
)

// OverdueChoice is an overdue-governance vote value.
type OverdueChoice string

const (
	VoteMarkOverdue  OverdueChoice = "mark_overdue"
	VoteClearOverdue OverdueChoice = "clear_overdue"
)

// Valid reports whether the choice is one of the two known values.
func (v OverdueChoice) Valid() bool {
	return v == VoteMarkOverdue || v == VoteClearOverdue
}

// OverdueVote is one member's live vote on another member's standing.
// Keyed by (group, target, voter); re-casting replaces the prior vote.
// This upsert semantic is deliberately different from single-shot
// approval votes.
type OverdueVote struct {
	GroupID      string        `json:"groupId"`
	TargetUserID string        `json:"targetUserId"`
	VoterID      string        `json:"voterId"`
	Vote         OverdueChoice `json:"vote"`
	CreatedAt    int64         `json:"createdAt"`
}

// OverdueStanding is the per-member view returned by the overdue status
// endpoint: current status plus the live tally behind it.
type OverdueStanding struct {
	UserID        string       `json:"userId"`
	Name          string       `json:"name"`
	Status        MemberStatus `json:"status"`
	MarkVotes     int          `json:"markVotes"`
	RequiredVotes int          `json:"requiredVotes"`
}
