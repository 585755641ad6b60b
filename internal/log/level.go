package log

import "log/slog"

// Level is the severity of a diagnostic. The bar for completion-time
// output is deliberately high: anything below LevelWarn is developer
// noise and stays silent under the default configuration.
type Level int

const (
	// LevelDebug traces loader and resolver internals
	LevelDebug Level = iota
	// LevelInfo reports normal progress (artifact written, cache hit)
	LevelInfo
	// LevelWarn reports degraded completion: a provider that failed and
	// yielded an empty candidate subset
	LevelWarn
	// LevelError reports failures that abort the invocation
	LevelError
)

// String returns the level's conventional upper-case spelling
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ToSlogLevel maps a Level onto the slog scale
func (l Level) ToSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel reads a --log-level value. Unknown spellings fall back to
// LevelInfo rather than erroring; a bad logging flag must not break a
// completion request.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}
