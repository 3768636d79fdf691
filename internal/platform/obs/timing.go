package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time measures an operation's duration and logs it on return, including the
// error if the operation failed. Usage: defer obs.Time(ctx, "op")(&err).
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Error().
				Str("request_id", reqID).
				Str("op", name).
				Dur("duration", dur).
				Err(*errp).
				Msg("operation failed")
			return
		}
		log.Debug().
			Str("request_id", reqID).
			Str("op", name).
			Dur("duration", dur).
			Msg("operation complete")
	}
}
