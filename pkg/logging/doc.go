// Package logging configures the log/slog loggers used across phiremock.
//
// Library packages never create loggers on their own. They accept a
// *slog.Logger through an option and fall back to Nop():
//
//	client := phiremock.New(endpoint, phiremock.WithLogger(logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})))
//
// The CLI builds its logger from the --log-level and --log-format flags
// (or PHIREMOCK_LOG_LEVEL / PHIREMOCK_LOG_FORMAT) with ParseLevel and
// ParseFormat. Logs always go to stderr so that stdout stays parseable.
package logging
