package application

import (
	"go.uber.org/zap"
)

// NewLogger builds the process logger. verbose selects the development
// config; logFile, when set, receives all output instead of stderr. quiet
// discards everything when no log file is configured, for surfaces that own
// the terminal or stdio.
func NewLogger(logFile string, verbose, quiet bool) (*zap.Logger, error) {
	if logFile == "" && quiet {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	if logFile != "" {
		cfg.OutputPaths = []string{logFile}
		cfg.ErrorOutputPaths = []string{logFile}
	}
	return cfg.Build()
}
