// Package governance implements the overdue sanctioning rules: the
// supermajority vote tally and the automatic clearing that kicks in once
// a member's debt resolves. Like the ledger, everything is a pure
// function over facts; the service layer wires it to the store.
package governance

import "github.com/White-Devil2839/peerflow/internal/models"

// RequiredVotes returns the supermajority needed to mark a member
// overdue: ceil(0.75 * groupSize).
func RequiredVotes(groupSize int) int {
	return (3*groupSize + 3) / 4
}

// MarkCount counts the live mark_overdue votes against target.
// Votes are keyed (group, target, voter) with last-write-wins upsert
// semantics, so the slice already holds at most one vote per voter.
func MarkCount(votes []models.OverdueVote, target string) int {
	n := 0
	for _, v := range votes {
		if v.TargetUserID == target && v.Vote == models.VoteMarkOverdue {
			n++
		}
	}
	return n
}

// ResolveStatus recomputes a member's standing from the full vote set.
// The tally is never kept incrementally; recounting on every cast
// avoids drift between a counter and its backing store.
func ResolveStatus(votes []models.OverdueVote, target string, groupSize int) models.MemberStatus {
	if MarkCount(votes, target) >= RequiredVotes(groupSize) {
		return models.MemberOverdue
	}
	return models.MemberActive
}

// ShouldAutoClear reports whether a member's sanction must be lifted
// based on their current net: debt fully resolved (net >= 0) or shrunk
// below the group threshold. Auto-clearing overrides the vote tally.
//
// The comparison uses the group's current threshold even for sanctions
// applied under an older threshold value; thresholds are not versioned.
func ShouldAutoClear(net, threshold int64) bool {
	return net >= 0 || -net < threshold
}
