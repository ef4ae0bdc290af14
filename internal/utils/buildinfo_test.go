package utils_test

import (
	"testing"

	"github.com/temirov/ecotr3/internal/utils"
	"go.uber.org/zap/zapcore"
)

// TestGetApplicationVersionPrefersLinkedVersion verifies the link-time version wins.
func TestGetApplicationVersionPrefersLinkedVersion(t *testing.T) {
	previousVersion := utils.Version
	t.Cleanup(func() { utils.Version = previousVersion })

	utils.Version = " v1.2.3 "
	if version := utils.GetApplicationVersion(); version != "v1.2.3" {
		t.Fatalf("expected v1.2.3, got %s", version)
	}
}

// TestNewApplicationLoggerLevels verifies verbose loggers enable debug output.
func TestNewApplicationLoggerLevels(t *testing.T) {
	quietLogger, quietError := utils.NewApplicationLogger(false)
	if quietError != nil {
		t.Fatalf("NewApplicationLogger error: %v", quietError)
	}
	if quietLogger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level disabled for quiet logger")
	}
	verboseLogger, verboseError := utils.NewApplicationLogger(true)
	if verboseError != nil {
		t.Fatalf("NewApplicationLogger error: %v", verboseError)
	}
	if !verboseLogger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level enabled for verbose logger")
	}
}
