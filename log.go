package guibridge

import (
	"log/slog"
	"os"
)

// bridgeLogLevel controls the log level for bridge debug logging.
// Default is LevelInfo, which suppresses Debug messages.
var bridgeLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging for the default logger.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		bridgeLogLevel.Set(slog.LevelDebug)
	} else {
		bridgeLogLevel.Set(slog.LevelInfo)
	}
}

// defaultLogger is used by components that were not given a logger.
var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: bridgeLogLevel}))
