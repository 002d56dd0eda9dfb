// internal/pkg/email/dispatcher.go
package email

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Job is a single background send
type Job func(ctx context.Context) (*SendResult, error)

// Dispatcher runs sends off the request path. Failures are logged, never returned.
type Dispatcher struct {
	timeout time.Duration
	logger  *logrus.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher giving each send its own deadline
func NewDispatcher(timeout time.Duration, logger *logrus.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{timeout: timeout, logger: logger}
}

// Dispatch starts job in the background. It returns false once the
// dispatcher has been drained.
func (d *Dispatcher) Dispatch(name string, fields logrus.Fields, job Job) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.WithFields(fields).WithField("job", name).Warn("dispatcher closed, dropping email")
		return false
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.WithFields(fields).WithField("job", name).Errorf("email job panicked: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		entry := d.logger.WithFields(fields).WithField("job", name)
		result, err := job(ctx)
		if err != nil {
			entry.WithError(err).Error("failed to send email")
			return
		}
		if result != nil && !result.Delivered {
			entry.Info(result.Message)
			return
		}
		entry.Debug("email dispatched")
	}()
	return true
}

// Wait stops accepting jobs and blocks until in-flight sends finish or ctx ends
func (d *Dispatcher) Wait(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
