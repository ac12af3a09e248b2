package domain

// LogLevel represents the severity of a message attached to a telemetry vertex,
// mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// LevelFor maps a diagnostic severity onto a log level.
func LevelFor(s Severity) LogLevel {
	switch s {
	case SeverityError:
		return LogLevelError
	case SeverityWarning:
		return LogLevelWarn
	case SeverityTrace:
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}
