// Package app holds the repositories: the synchronization layer between local
// view state and the gateway, one per entity type. Each repository owns a
// mutex-guarded mirror of its table; every load replaces the mirror wholesale
// (last fetch wins) and every mutation touches the mirror only after the
// gateway confirms, so a failure always leaves the last known good state.
package app

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Binarybee001/Shabana-Palace/internal/domain"
)

// gatewayErr converts a gateway failure into the user-facing taxonomy and
// leaves a developer-facing log entry. ErrNotFound passes through untouched;
// it is an answer, not an outage.
func gatewayErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	log.Error().Str("op", op).Err(err).Msg("gateway request failed")
	return fmt.Errorf("%w: %s: %v", domain.ErrGateway, op, err)
}

// cache TTL applied by all repositories, in seconds.
const cacheTTLSec = 300

const (
	roomsCacheKey    = "rooms:all"
	messagesCacheKey = "messages:all"
)

func reviewsCacheKey(roomID string) string { return "reviews:" + roomID }
