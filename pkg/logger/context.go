package logger

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
)

const (
	FieldComponent = "component"
	FieldRunID     = "run_id"

	// Poller-specific field names
	FieldIteration  = "iteration"
	FieldItem       = "item"
	FieldItemCount  = "item_count"
	FieldInterval   = "interval"
	FieldStatus     = "status"
	FieldFlag       = "flag"
	FieldRestarts   = "restarts"
	FieldConfigPath = "config_path"
)

// WithRunID stores the poller run id on ctx so lister and processor
// implementations can tag their own log lines.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

func GetRunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(runIDKey).(string); ok {
		return v
	}
	return ""
}
