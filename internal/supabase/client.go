package supabase

import (
	"github.com/supabase-community/supabase-go"
	"neuroforge-backend/internal/config"
)

type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

// NewClient returns a client with a nil Supabase handle when SUPABASE_URL is
// unset, which the realtime client treats as disabled.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.SupabaseURL == "" || cfg.SupabasePublishableKey == "" {
		return &Client{Config: cfg}, nil
	}

	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}
