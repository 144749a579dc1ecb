package logger

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fiveflix/videos-ms-go/internal/api_context"
)

var root *slog.Logger

// requestHandler decorates every record with the authenticated user id pulled
// from the request context, so auth and catalog lines can be correlated per
// account without threading the id through call sites.
type requestHandler struct{ next slog.Handler }

func (h requestHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.next.Enabled(ctx, lvl)
}

func (h requestHandler) Handle(ctx context.Context, r slog.Record) error {
	if usr, ok := api_context.AuthUserFromContext(ctx); ok {
		r.AddAttrs(slog.Int64("uid", usr.ID))
	} else {
		r.AddAttrs(slog.String("uid", "anonymous"))
	}
	return h.next.Handle(ctx, r)
}

func (h requestHandler) WithAttrs(a []slog.Attr) slog.Handler {
	return requestHandler{next: h.next.WithAttrs(a)}
}

func (h requestHandler) WithGroup(n string) slog.Handler {
	return requestHandler{next: h.next.WithGroup(n)}
}

// Init configures the process logger from LOG_FORMAT (json|text, default json),
// LOG_LEVEL (debug|info|warn|error, default info) and LOG_SOURCE (default off).
func Init() {
	opts := &slog.HandlerOptions{
		Level:     levelFromEnv(os.Getenv("LOG_LEVEL")),
		AddSource: boolFromEnv(os.Getenv("LOG_SOURCE")),
	}

	var base slog.Handler
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "text") {
		base = slog.NewTextHandler(os.Stdout, opts)
	} else {
		base = slog.NewJSONHandler(os.Stdout, opts)
	}

	root = slog.New(requestHandler{next: base}).With("svc", "videos-ms")
	slog.SetDefault(root)

	// route legacy log.Printf callers through the same handler
	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(base, slog.LevelInfo).Writer())
}

func levelFromEnv(s string) slog.Leveler {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func boolFromEnv(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func active() *slog.Logger {
	if root != nil {
		return root
	}
	return slog.Default()
}

func Info(ctx context.Context, msg string, attrs ...any)  { active().InfoContext(ctx, msg, attrs...) }
func Warn(ctx context.Context, msg string, attrs ...any)  { active().WarnContext(ctx, msg, attrs...) }
func Error(ctx context.Context, msg string, attrs ...any) { active().ErrorContext(ctx, msg, attrs...) }
func Debug(ctx context.Context, msg string, attrs ...any) { active().DebugContext(ctx, msg, attrs...) }

func Infof(ctx context.Context, format string, a ...any) {
	active().InfoContext(ctx, fmt.Sprintf(format, a...))
}

func Warnf(ctx context.Context, format string, a ...any) {
	active().WarnContext(ctx, fmt.Sprintf(format, a...))
}

func Errorf(ctx context.Context, format string, a ...any) {
	active().ErrorContext(ctx, fmt.Sprintf(format, a...))
}

func Debugf(ctx context.Context, format string, a ...any) {
	active().DebugContext(ctx, fmt.Sprintf(format, a...))
}
