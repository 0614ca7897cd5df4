package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stitchbook/internal/config"
	"stitchbook/internal/logging"
	"stitchbook/internal/store"
)

const (
	lockKindProject = "project"
	lockKindRecord  = "record"

	// sessionGap is the longest pause that still extends the current time
	// slot instead of opening a new one.
	sessionGap = 30 * time.Minute
)

var (
	// ErrOutOfRange reports a component, row or stitch reference that does
	// not exist in the document.
	ErrOutOfRange = errors.New("position out of range")
	// ErrUnknownStitch reports a stitch id missing from the catalog.
	ErrUnknownStitch = errors.New("unknown stitch")
)

// Service coordinates the store, edit locks and logging.
type Service struct {
	store  *store.Store
	locker *store.Locker
	logger *slog.Logger
	now    func() time.Time
}

// New builds a Service. A nil logger discards output.
func New(st *store.Store, locker *store.Locker, logger *slog.Logger) *Service {
	return &Service{
		store:  st,
		locker: locker,
		logger: logging.NewComponentLogger(logger, "tracker"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// NewFromConfig builds a Service whose locks live under the configured data
// directory.
func NewFromConfig(cfg *config.Config, st *store.Store, logger *slog.Logger) *Service {
	timeout := time.Duration(cfg.Editor.LockTimeoutSeconds) * time.Second
	return New(st, store.NewLocker(cfg.LockDir(), timeout), logger)
}

// withLock runs fn while holding the advisory lock for one document.
func (s *Service) withLock(ctx context.Context, kind, id string, fn func() error) error {
	release, err := s.locker.Acquire(ctx, kind, id)
	if err != nil {
		if errors.Is(err, store.ErrLocked) {
			logging.WarnWithContext(ctx, s.logger, "document busy", "lock_conflict",
				logging.String("kind", kind),
				logging.String(logging.FieldErrorHint, "close the other editor or raise editor.lock_timeout_seconds"),
				logging.String(logging.FieldImpact, "change was not saved"),
			)
		}
		return err
	}
	defer release()
	return fn()
}

func projectContext(ctx context.Context, owner, projectID string) context.Context {
	return logging.ContextWithAttrs(ctx,
		logging.String(logging.FieldOwner, owner),
		logging.String(logging.FieldProject, projectID),
	)
}

func recordContext(ctx context.Context, owner, recordID string) context.Context {
	return logging.ContextWithAttrs(ctx,
		logging.String(logging.FieldOwner, owner),
		logging.String(logging.FieldRecord, recordID),
	)
}

func outOfRange(what string, value int) error {
	return fmt.Errorf("%s %d: %w", what, value, ErrOutOfRange)
}
