package adapters

import (
	"fmt"
	"log/slog"

	"songshelf/internal/logging"
)

// BaseAdapter provides common functionality for song sources
type BaseAdapter struct {
	authenticated bool
	platformName  string
	log           *slog.Logger
}

// NewBaseAdapter creates a new BaseAdapter
func NewBaseAdapter(platformName string, log *slog.Logger) BaseAdapter {
	return BaseAdapter{
		platformName: platformName,
		log:          logging.OrDiscard(log).With("source", platformName),
	}
}

// SetAuthenticated updates the authentication status
func (b *BaseAdapter) SetAuthenticated(status bool) {
	b.authenticated = status
}

// IsAuthenticated checks if the adapter is authenticated
func (b *BaseAdapter) IsAuthenticated() bool {
	return b.authenticated
}

// CheckAuth ensures the adapter is authenticated before loading songs
func (b *BaseAdapter) CheckAuth() error {
	if !b.IsAuthenticated() {
		return fmt.Errorf("%w: call Authenticate() first for %s", ErrNotAuthenticated, b.platformName)
	}
	return nil
}

// Name returns the name of the source
func (b *BaseAdapter) Name() string {
	return b.platformName
}
