package utils

import (
	"go.uber.org/zap"
)

// NewLogger builds the process logger. LOG_ENV=development switches to
// the human-readable console encoder.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
