package supabase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
	"quickai-backend/internal/quota"
)

// Metadata keys on the identity provider's user record. The reset policy
// for free_usage is owned by the billing side, not this service.
const (
	planMetadataKey      = "plan"
	freeUsageMetadataKey = "free_usage"
)

// IdentityLedger implements quota.UsageLedger on top of the identity
// provider's user metadata via the auth admin API.
type IdentityLedger struct {
	client *Client
}

func NewIdentityLedger(client *Client) *IdentityLedger {
	return &IdentityLedger{client: client}
}

func (l *IdentityLedger) Get(_ context.Context, userID string) (quota.UsageState, error) {
	meta, err := l.userMetadata(userID)
	if err != nil {
		return quota.UsageState{}, err
	}
	return stateFromMetadata(meta), nil
}

// Increment bumps free_usage by one. This is a read-modify-write against
// the metadata API: two concurrent increments can collapse into one, the
// same tolerance the gate itself accepts.
func (l *IdentityLedger) Increment(_ context.Context, userID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	meta, err := l.userMetadata(userID)
	if err != nil {
		return err
	}
	state := stateFromMetadata(meta)

	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta[freeUsageMetadataKey] = state.FreeUsage + 1

	_, err = l.client.Supabase.Auth.AdminUpdateUser(types.AdminUpdateUserRequest{
		UserID:       uid,
		UserMetadata: meta,
	})
	if err != nil {
		return fmt.Errorf("failed to update user metadata: %w", err)
	}
	return nil
}

func (l *IdentityLedger) userMetadata(userID string) (map[string]interface{}, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	resp, err := l.client.Supabase.Auth.AdminGetUser(types.AdminGetUserRequest{UserID: uid})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return resp.UserMetadata, nil
}

func stateFromMetadata(meta map[string]interface{}) quota.UsageState {
	state := quota.UsageState{Plan: quota.PlanFree}
	if plan, ok := meta[planMetadataKey].(string); ok && plan != "" {
		state.Plan = plan
	}
	// JSON numbers decode as float64.
	switch v := meta[freeUsageMetadataKey].(type) {
	case float64:
		state.FreeUsage = int(v)
	case int:
		state.FreeUsage = v
	}
	return state
}
