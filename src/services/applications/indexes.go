package applications

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrIndexConflict means existing records already break uniqueness, so the
// unique indexes can never be built without manual cleanup.
var ErrIndexConflict = errors.New("existing applications violate phone/email uniqueness")

// IndexEnsurer is implemented by *MongoRepository.
type IndexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

// IndexGate keeps Create closed until the unique indexes exist.
type IndexGate struct {
	ready atomic.Bool
}

func NewIndexGate() *IndexGate {
	return &IndexGate{}
}

func (g *IndexGate) Ready() bool {
	return g.ready.Load()
}

// Run calls EnsureIndexes every interval until it succeeds, opening the gate.
// It gives up with ErrIndexConflict when the build hits duplicate data and
// returns ctx.Err() when ctx ends first.
func (g *IndexGate) Run(ctx context.Context, repo IndexEnsurer, timeout, interval time.Duration, log *zap.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		err := repo.EnsureIndexes(attemptCtx)
		cancel()

		if err == nil {
			g.ready.Store(true)
			log.Info("✅ application indexes ready")
			return nil
		}
		if _, dup := duplicateField(err); dup {
			log.Error("❌ unique indexes cannot be built, submissions stay closed", zap.Error(err))
			return fmt.Errorf("%w: %v", ErrIndexConflict, err)
		}
		log.Warn("⚠️ could not create application indexes, retrying", zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
