package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"facethewall/internal/locale"
	"facethewall/internal/store"
)

// tableChecker is satisfied by *store.Store.
type tableChecker interface {
	TableExists(ctx context.Context) (bool, error)
}

// checkStartup refuses to start with incomplete translations. Image store
// problems only warn, since pages render with fallback assets without it.
func checkStartup(ctx context.Context, bundles *locale.Bundles, images tableChecker, table string) error {
	if err := bundles.Validate(); err != nil {
		return err
	}

	exists, err := images.TableExists(ctx)
	if err != nil {
		log.Warn().Err(err).Str("table", table).Msg("could not check image table; serving fallback assets")
		return nil
	}
	if !exists {
		log.Warn().Str("table", table).Msg("image table missing, run migrations; serving fallback assets")
	}
	return nil
}

var _ tableChecker = (*store.Store)(nil)
