package deskit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/deskit/pkg/logger"
)

// defaultFlushTimeout bounds how long Close waits for Sentry.
const defaultFlushTimeout = 2 * time.Second

// Close runs the shutdown hooks and flushes buffered error reports.
// Call it before the process exits. Subsequent calls return the first result.
func (a *App) Close(ctx context.Context) error {
	a.closeOnce.Do(func() {
		a.closeErr = a.shutdown(ctx)
	})
	return a.closeErr
}

func (a *App) shutdown(ctx context.Context) error {
	a.logger.Info("deskit: shutting down")

	var errs []error
	for _, hook := range a.shutdownHooks {
		if err := hook(ctx); err != nil {
			errs = append(errs, err)
			a.logger.Error("deskit: shutdown hook failed", slog.Any("error", err))
		}
	}

	if len(errs) > 0 {
		a.logger.Error("deskit: shutdown completed with errors")
	} else {
		a.logger.Info("deskit: shutdown completed")
	}

	timeout := defaultFlushTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := a.release(timeout); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// release flushes Sentry and closes the log file. A zero timeout uses
// defaultFlushTimeout.
func (a *App) release(timeout time.Duration) error {
	if timeout == 0 {
		timeout = defaultFlushTimeout
	}
	if timeout > 0 {
		logger.Flush(timeout)
	}

	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}
