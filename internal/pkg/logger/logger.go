package logger

import (
	"io"
	"log/slog"

	"github.com/go-chi/httplog/v3"
)

// New returns a JSON logger emitting ECS field names, tagged with the
// service identity.
func New(w io.Writer, app, version, env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app),
		slog.String("version", version),
		slog.String("env", env),
	)
}
