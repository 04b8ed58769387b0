package logging

import (
	"context"

	"github.com/google/uuid"
)

// NewRunID returns a fresh random run ID.
func NewRunID() string {
	return uuid.NewString()
}

// StartRun returns ctx carrying a new run ID, reusing one already present.
func StartRun(ctx context.Context) context.Context {
	if GetRunID(ctx) != "" {
		return ctx
	}
	return WithRunID(ctx, NewRunID())
}
