// Package quota holds the plan and usage rules that gate every AI
// capability: premium-only features reject free users outright, and
// free-tier-eligible features allow at most FreeTierLimit calls before
// requiring an upgrade.
package quota

import (
	"context"
	"errors"
)

const (
	PlanFree    = "free"
	PlanPremium = "premium"

	// FreeTierLimit is the number of free-tier-eligible calls a free user
	// gets before the gate rejects them.
	FreeTierLimit = 10
)

var (
	ErrPremiumRequired  = errors.New("premium plan required")
	ErrFreeLimitReached = errors.New("free usage limit reached")
)

// UsageState is a user's plan tier and consumed free-tier calls, as held
// by the identity provider's user metadata.
type UsageState struct {
	Plan      string
	FreeUsage int
}

func (s UsageState) Premium() bool {
	return s.Plan == PlanPremium
}

// UsageLedger reads and advances per-user usage state. The production
// implementation talks to the identity provider; tests inject fakes.
type UsageLedger interface {
	Get(ctx context.Context, userID string) (UsageState, error)
	Increment(ctx context.Context, userID string) error
}

// Gate decides whether a caller may invoke a capability. It never touches
// the ledger: the increment happens only after a successful request, in
// the handler pipeline.
func Gate(state UsageState, premiumOnly bool) error {
	if state.Premium() {
		return nil
	}
	if premiumOnly {
		return ErrPremiumRequired
	}
	if state.FreeUsage >= FreeTierLimit {
		return ErrFreeLimitReached
	}
	return nil
}
