package logging

import "log/slog"

// Log keys shared across packages so queries work the same everywhere.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldLeague     = "league"
	FieldGameID     = "game_id"
	FieldTeamID     = "team_id"
	FieldSubscriber = "subscriber"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldDate       = "date"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
)

// WithCommon adds the service identity to attrs, skipping blank values.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	for _, kv := range [...][2]string{{FieldService, service}, {FieldVersion, version}} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	return attrs
}
