// Package logging provides the process-wide structured logger.
package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Logger is the shared logger. It writes to stderr because stdout is
// reserved for the stdio MCP transport.
var Logger = &log.Logger{
	Out: os.Stderr,
	Formatter: &log.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	},
	Hooks:    make(log.LevelHooks),
	Level:    log.InfoLevel,
	ExitFunc: os.Exit,
}

// SetLevel applies a named log level. Unknown names fall back to info.
func SetLevel(level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	Logger.SetLevel(parsed)
}
