package quota_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"quickai-backend/internal/quota"
)

func TestGate_FreeUserUnderLimit(t *testing.T) {
	state := quota.UsageState{Plan: quota.PlanFree, FreeUsage: 9}
	assert.NoError(t, quota.Gate(state, false))
}

func TestGate_FreeUserAtLimit(t *testing.T) {
	state := quota.UsageState{Plan: quota.PlanFree, FreeUsage: quota.FreeTierLimit}
	err := quota.Gate(state, false)
	assert.ErrorIs(t, err, quota.ErrFreeLimitReached)
}

func TestGate_FreeUserOverLimit(t *testing.T) {
	state := quota.UsageState{Plan: quota.PlanFree, FreeUsage: 42}
	err := quota.Gate(state, false)
	assert.ErrorIs(t, err, quota.ErrFreeLimitReached)
}

func TestGate_PremiumIgnoresLimit(t *testing.T) {
	state := quota.UsageState{Plan: quota.PlanPremium, FreeUsage: 1000}
	assert.NoError(t, quota.Gate(state, false))
	assert.NoError(t, quota.Gate(state, true))
}

func TestGate_PremiumOnlyRejectsFreeUser(t *testing.T) {
	state := quota.UsageState{Plan: quota.PlanFree, FreeUsage: 0}
	err := quota.Gate(state, true)
	assert.ErrorIs(t, err, quota.ErrPremiumRequired)
}

func TestGate_EmptyPlanTreatedAsFree(t *testing.T) {
	state := quota.UsageState{FreeUsage: 0}
	assert.NoError(t, quota.Gate(state, false))
	assert.ErrorIs(t, quota.Gate(state, true), quota.ErrPremiumRequired)
}
