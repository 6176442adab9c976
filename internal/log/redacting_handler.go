package log

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
)

// MaskValue replaces redacted values.
const MaskValue = "***REDACTED***"

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// sensitiveKeys are attribute keys whose values are never logged.
var sensitiveKeys = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"cookie":              true,
	"set-cookie":          true,
	"password":            true,
	"passwd":              true,
	"secret":              true,
	"token":               true,
	"credentials":         true,
}

// sensitiveKeywords mark a key as sensitive when contained in it.
var sensitiveKeywords = []string{"password", "passwd", "secret", "token", "credential"}

// RedactingHandler wraps an slog.Handler and masks credentials before
// records reach it.
type RedactingHandler struct {
	handler slog.Handler
}

// NewRedactingHandler wraps handler. A nil handler wraps slog.Default().Handler().
func NewRedactingHandler(handler slog.Handler) *RedactingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactingHandler{handler: handler}
}

// Enabled implements slog.Handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	redacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		redacted.AddAttrs(redactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, redacted)
}

// WithAttrs implements slog.Handler.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redactAttr(a)
	}
	return &RedactingHandler{handler: h.handler.WithAttrs(redacted)}
}

// WithGroup implements slog.Handler.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: h.handler.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			redacted[i] = redactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	case slog.KindString:
		if isSensitiveKey(a.Key) {
			return slog.String(a.Key, MaskValue)
		}
		return slog.String(a.Key, RedactURL(a.Value.String()))
	case slog.KindAny:
		if isSensitiveKey(a.Key) {
			return slog.String(a.Key, MaskValue)
		}
		// Errors often embed the URL that failed.
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, redactWords(err.Error()))
		}
		return a
	default:
		if isSensitiveKey(a.Key) {
			return slog.String(a.Key, MaskValue)
		}
		return a
	}
}

func isSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	if sensitiveKeys[k] {
		return true
	}
	for _, kw := range sensitiveKeywords {
		if strings.Contains(k, kw) {
			return true
		}
	}
	return false
}

// RedactURL replaces the password of a URL with userinfo by "xxxxx", as
// url.URL.Redacted does. Anything that is not such a URL is returned unchanged.
func RedactURL(s string) string {
	if !strings.Contains(s, "@") || !strings.Contains(s, "://") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || u.User == nil {
		return s
	}
	if _, ok := u.User.Password(); !ok {
		return s
	}
	return u.Redacted()
}

// redactWords applies RedactURL to every whitespace-separated word of s.
func redactWords(s string) string {
	if !strings.Contains(s, "@") {
		return s
	}
	words := strings.Fields(s)
	for i, w := range words {
		trimmed := strings.Trim(w, `"':,`)
		if r := RedactURL(trimmed); r != trimmed {
			words[i] = strings.Replace(w, trimmed, r, 1)
		}
	}
	return strings.Join(words, " ")
}

// NewLogger returns a logger writing to w in the given format (FormatText
// or FormatJSON; anything else falls back to text). The level is Warn, or
// Debug when verbose.
func NewLogger(w io.Writer, verbose bool, format string) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, FormatJSON) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(NewRedactingHandler(handler))
}
