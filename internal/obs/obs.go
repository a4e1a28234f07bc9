// Package obs centralizes structured logging construction so the driver and
// CLI entry point share one zap configuration instead of each hand-rolling
// their own.
package obs

import "go.uber.org/zap"

// NewLogger returns a zap.Logger: the development encoder (human-readable,
// colorized level, caller line) when debug is set, the production JSON
// encoder otherwise.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
