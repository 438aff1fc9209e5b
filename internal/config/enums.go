package config

import (
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevels = normalization.NewNormalizer("log level", map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

// NormalizeLogLevel maps raw onto a LogLevel, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel { return logLevels.Normalize(raw) }

// ParseLogLevel is NormalizeLogLevel that rejects unknown input.
func ParseLogLevel(raw string) (LogLevel, error) { return logLevels.Parse(raw) }

// SlogLevel converts l to a slog level.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormats = normalization.NewNormalizer("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// NormalizeLogFormat maps raw onto a LogFormat, defaulting to text.
func NormalizeLogFormat(raw string) LogFormat { return logFormats.Normalize(raw) }

// ParseLogFormat is NormalizeLogFormat that rejects unknown input.
func ParseLogFormat(raw string) (LogFormat, error) { return logFormats.Parse(raw) }

// CollisionPolicy selects how the manifest builder treats alias collisions.
type CollisionPolicy string

const (
	CollisionWarn  CollisionPolicy = "warn"
	CollisionError CollisionPolicy = "error"
)

var collisionPolicies = normalization.NewNormalizer("collision policy", map[string]CollisionPolicy{
	"warn":  CollisionWarn,
	"error": CollisionError,
}, CollisionWarn)

// ParseCollisionPolicy maps raw onto a CollisionPolicy, rejecting unknown input.
func ParseCollisionPolicy(raw string) (CollisionPolicy, error) { return collisionPolicies.Parse(raw) }
