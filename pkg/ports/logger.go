// Package ports defines the interfaces between the verifier core and its
// external collaborators: frame decoding, marker reading, evidence storage,
// rendering, encoding, file access and logging.
package ports

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is used for per-component processing details.
	LevelDebug LogLevel = iota
	// LevelInfo is used for run progress.
	LevelInfo
	// LevelWarn is used for problems that do not stop verification,
	// such as an evidence image that could not be written.
	LevelWarn
	// LevelError is used for problems that abort the run.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

var levelNames = map[LogLevel]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelQuiet: "quiet",
}

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseLogLevel parses a string into a LogLevel. Unknown names map to LevelInfo.
func ParseLogLevel(s string) LogLevel {
	for level, name := range levelNames {
		if name == s {
			return level
		}
	}
	return LevelInfo
}

// Logger abstracts logging operations with multi-language support.
// The msg parameter is a message key that may be translated before output.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// WithComponent returns a Logger that prefixes messages with the component name.
	WithComponent(component string) Logger
}
