package supabase

import (
	"github.com/supabase-community/supabase-go"
	"quickai-backend/internal/config"
)

// Client wraps the Supabase project client. It is created with the
// service role key because the usage ledger needs the auth admin API.
type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}
