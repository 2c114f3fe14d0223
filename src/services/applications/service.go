package applications

import (
	"context"
	"errors"
	"time"

	"flux-backend/src/metrics"
	"flux-backend/src/models"
	"flux-backend/src/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MaxListSize caps GET /api/applications.
const MaxListSize = 100

// Notifier is told about every stored application. Failures never fail the request.
type Notifier interface {
	ApplicationReceived(ctx context.Context, app *models.Application) error
}

type Service struct {
	repo     Repository
	validate *validation.Validator
	notifier Notifier
	indexes  *IndexGate
	log      *zap.Logger
	timeout  time.Duration
	now      func() time.Time
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithIndexGate refuses inserts until g reports the unique indexes exist.
func WithIndexGate(g *IndexGate) Option {
	return func(s *Service) { s.indexes = g }
}

// WithTimeout bounds every store round trip.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, v *validation.Validator, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		validate: v,
		log:      log.Named("applications"),
		timeout:  5 * time.Second,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates, normalizes and stores one application.
//
// Errors: *validation.Errors for bad payloads, *DuplicateError when phone or
// email is taken, ErrSaveFailed for anything else, including a closed index
// gate. Nothing is written unless validation passes.
func (s *Service) Create(ctx context.Context, in models.ApplicationInput) (*models.Application, error) {
	if err := s.Validate(&in); err != nil {
		return nil, err
	}

	if s.indexes != nil && !s.indexes.Ready() {
		metrics.ApplicationsRejected.WithLabelValues(metrics.ReasonError).Inc()
		s.log.Warn("⚠️ application refused, unique indexes not ready")
		return nil, ErrSaveFailed
	}

	app := in.ToApplication()
	app.ID = primitive.NewObjectID()
	// BSON dates keep milliseconds only
	now := s.now().Truncate(time.Millisecond)
	app.CreatedAt = now
	app.UpdatedAt = now

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.Insert(storeCtx, app); err != nil {
		var dup *DuplicateError
		if errors.As(err, &dup) {
			metrics.ApplicationsRejected.WithLabelValues(metrics.ReasonDuplicate).Inc()
			s.log.Info("duplicate application rejected", zap.String("field", dup.Field))
			return nil, dup
		}
		metrics.ApplicationsRejected.WithLabelValues(metrics.ReasonError).Inc()
		s.log.Error("❌ failed to save application", zap.Error(err))
		return nil, ErrSaveFailed
	}

	metrics.ApplicationsCreated.Inc()
	s.log.Info("✅ application stored", zap.String("id", app.ID.Hex()))

	if s.notifier != nil {
		if err := s.notifier.ApplicationReceived(ctx, app); err != nil {
			s.log.Warn("⚠️ could not queue confirmation", zap.String("id", app.ID.Hex()), zap.Error(err))
		}
	}
	return app, nil
}

// Validate normalizes in and returns *validation.Errors listing every
// violation, or nil. It never touches the store.
func (s *Service) Validate(in *models.ApplicationInput) error {
	in.Normalize()
	if err := s.validate.Struct(in); err != nil {
		metrics.ApplicationsRejected.WithLabelValues(metrics.ReasonValidation).Inc()
		return err
	}
	return nil
}

// List returns up to MaxListSize records, newest first.
func (s *Service) List(ctx context.Context) ([]models.Application, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	apps, err := s.repo.List(storeCtx, MaxListSize)
	if err != nil {
		s.log.Error("❌ failed to fetch applications", zap.Error(err))
		return nil, ErrFetchFailed
	}
	return apps, nil
}

// Ping reports whether the store answers within the configured timeout.
func (s *Service) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.Ping(ctx)
}
