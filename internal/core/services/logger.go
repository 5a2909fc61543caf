package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/vncsmyrnk/pollgate/internal/core/domain"
)

// ResolveLogger guarantees a non-nil logger for service code paths.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func storageError(op string, err error) error {
	if errors.Is(err, domain.ErrNotInitialized) || errors.Is(err, domain.ErrAlreadyInitialized) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}
