package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"lyrebird/internal/config"
	"lyrebird/internal/history"
	"lyrebird/internal/logging"
	"lyrebird/internal/reconcile"
)

// ErrAlreadyRunning reports that another process holds the daemon lock.
var ErrAlreadyRunning = errors.New("another lyrebird instance is already running")

// Daemon runs reconciliation passes on an interval and enforces
// single-instance execution through a lock file. With a zero interval it
// performs exactly one pass, which is what the scan command uses.
type Daemon struct {
	cfg     *config.Config
	engine  *reconcile.Engine
	store   *history.Store
	logger  *slog.Logger
	running atomic.Bool

	lockPath string
	lock     *flock.Flock
}

// New constructs a daemon. The history store may be nil, in which case runs
// are not persisted.
func New(cfg *config.Config, engine *reconcile.Engine, store *history.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || engine == nil || logger == nil {
		return nil, errors.New("daemon requires config, engine, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.StateDir, "lyrebird.lock")
	return &Daemon{
		cfg:      cfg,
		engine:   engine,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// LockPath returns the lock file location.
func (d *Daemon) LockPath() string {
	return d.lockPath
}

// Running reports whether a Run loop is active in this process.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Run acquires the instance lock, performs a pass, and keeps rescanning on
// the configured interval until ctx is cancelled. A zero interval returns
// after the first pass. The lock is released on return.
func (d *Daemon) Run(ctx context.Context) error {
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}
	defer func() {
		if unlockErr := d.lock.Unlock(); unlockErr != nil {
			d.logger.Warn("failed to release instance lock", logging.Error(unlockErr))
		}
	}()

	d.running.Store(true)
	defer d.running.Store(false)

	interval := time.Duration(d.cfg.Scan.Interval) * time.Second
	d.logger.Info("daemon started",
		logging.String("lock", d.lockPath),
		logging.Duration("interval", interval))

	if err := d.pass(ctx); err != nil {
		return err
	}
	if interval <= 0 {
		return ctx.Err()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("daemon stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := d.pass(ctx); err != nil && !errors.Is(err, context.Canceled) {
				d.logger.Error("scan pass failed", logging.Error(err))
			}
		}
	}
}

// pass runs one reconciliation and records it. Cancellation mid-pass still
// records the partial summary.
func (d *Daemon) pass(ctx context.Context) error {
	summary, err := d.engine.Run(ctx)
	if summary != nil && d.store != nil {
		if recordErr := d.store.RecordRun(context.WithoutCancel(ctx), summary); recordErr != nil {
			d.logger.Warn("failed to record run", logging.Error(recordErr))
		}
	}
	return err
}
