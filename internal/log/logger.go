package log

import "go.uber.org/zap"

// New builds the process logger: JSON in production, console everywhere
// else.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
