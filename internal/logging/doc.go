// Package logging provides structured logging for resdash.
//
// It wraps log/slog with a JSON handler writing through a size-rotating
// file writer. The TUI owns the terminal, so a running dashboard never logs
// to stderr; logs go to debug.log under the configured log directory.
//
// Child loggers carry persistent attributes:
//
//	logger, err := logging.NewLogger(dir, "INFO", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	run := logger.WithSession(logging.NewSessionID())
//	run.WithComponent("watcher").Info("snapshot reloaded", "records", 6)
//
// Use [NopLogger] when logging is disabled or in tests.
package logging
