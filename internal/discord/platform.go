package discord

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/rest"
	"github.com/robalyx/airlock/internal/discord/rate"
	"github.com/robalyx/airlock/internal/review"
	"github.com/robalyx/airlock/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// codeMissingPermissions is Discord's JSON error code for a refused action.
const codeMissingPermissions = 50013

var (
	_ review.Roster   = (*Platform)(nil)
	_ review.Surface  = (*Platform)(nil)
	_ review.Executor = (*Platform)(nil)
)

// Platform exposes a disgo client as the roster, surface and executor of a review.
type Platform struct {
	client  bot.Client
	limiter *rate.Limiter
	retry   utils.RetryOptions
	members singleflight.Group
	logger  *zap.Logger
}

// NewPlatform creates a platform adapter. The limiter paces ban and kick calls.
func NewPlatform(client bot.Client, limiter *rate.Limiter, retry utils.RetryOptions, logger *zap.Logger) *Platform {
	return &Platform{
		client:  client,
		limiter: limiter,
		retry:   retry,
		logger:  logger.Named("discord_platform"),
	}
}

// mapError converts a refused request into review.ErrPermissionDenied.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var restErr *rest.Error
	if errors.As(err, &restErr) {
		forbidden := restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden
		if forbidden || restErr.Code == codeMissingPermissions {
			return fmt.Errorf("%w: %s", review.ErrPermissionDenied, restErr.Message)
		}
	}

	return err
}
