package donorctx

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type contextKey struct{}

var donorKey contextKey

// WithDonorID attaches the authenticated donor to the request context.
func WithDonorID(ctx context.Context, id snowflake.ID) context.Context {
	return context.WithValue(ctx, donorKey, id)
}

// DonorIDFromContext returns the authenticated donor, if any.
func DonorIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	id, ok := ctx.Value(donorKey).(snowflake.ID)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}
