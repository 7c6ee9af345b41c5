package access

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// maxGenerationAttempts bounds collision retries during Create.
	maxGenerationAttempts = 10
	// maxBatchSize is the table-transaction limit of the underlying
	// store; PurgeExpired never submits a larger batch.
	maxBatchSize = 100
)

// Service owns all registry writes. Readers must treat expired rows as
// missing; the only write a read may trigger is the opportunistic
// cleanup in GetByCode.
type Service struct {
	repo Repository
	log  *logrus.Entry
	now  func() time.Time
}

func NewService(repo Repository, log *logrus.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.WithField("component", "access"),
		now:  time.Now,
	}
}

// Create generates a fresh code and stores it. Collisions are retried
// up to maxGenerationAttempts before ErrGenerationExhausted.
func (s *Service) Create(ctx context.Context, displayName string, keepAliveMonths int) (*AccessCode, error) {
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		code, err := randomCode()
		if err != nil {
			return nil, err
		}
		rec := &AccessCode{
			Code:            code,
			DisplayName:     displayName,
			KeepAliveMonths: keepAliveMonths,
			CreatedOn:       s.now().UTC(),
		}
		err = s.repo.Insert(ctx, rec)
		if err == nil {
			return rec, nil
		}
		if errors.Is(err, ErrCodeExists) {
			s.log.WithField("code", code).Warn("code collision, retrying")
			continue
		}
		return nil, err
	}
	return nil, ErrGenerationExhausted
}

// GetByCode looks up a normalized code. Expired rows read as
// ErrNotFound; the stale row is deleted opportunistically, and that
// cleanup failing never changes the outcome.
func (s *Service) GetByCode(ctx context.Context, code string) (*AccessCode, error) {
	code = NormalizeCode(code)
	if !ValidCode(code) {
		return nil, ErrValidation
	}

	rec, err := s.repo.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if !rec.ActiveAt(s.now()) {
		if _, err := s.repo.Delete(ctx, code); err != nil {
			s.log.WithField("code", code).WithError(err).Warn("expired-row cleanup failed")
		}
		return nil, ErrNotFound
	}
	return rec, nil
}

// List returns every record, newest first, with derived fields.
func (s *Service) List(ctx context.Context) ([]Projection, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedOn.After(recs[j].CreatedOn)
	})

	now := s.now()
	out := make([]Projection, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].Project(now))
	}
	return out, nil
}

// Upsert creates the record if absent or merges over the existing one,
// preserving the original CreatedOn.
func (s *Service) Upsert(ctx context.Context, rec AccessCode) (*AccessCode, error) {
	rec.Code = NormalizeCode(rec.Code)
	if rec.Code == "" {
		return nil, ErrValidation
	}

	existing, err := s.repo.Get(ctx, rec.Code)
	switch {
	case err == nil:
		rec.CreatedOn = existing.CreatedOn
	case errors.Is(err, ErrNotFound):
		rec.CreatedOn = s.now().UTC()
	default:
		return nil, err
	}

	if err := s.repo.Upsert(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes a code. Idempotent; reports whether a row existed.
func (s *Service) Delete(ctx context.Context, code string) (bool, error) {
	return s.repo.Delete(ctx, NormalizeCode(code))
}

// PurgeExpired scans the registry and deletes every expired row in
// batches of maxBatchSize. Each batch is atomic; a failure mid-sweep
// leaves the remainder for the next run.
func (s *Service) PurgeExpired(ctx context.Context) (int, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	var expired []string
	for i := range recs {
		if !recs[i].ActiveAt(now) {
			expired = append(expired, recs[i].Code)
		}
	}

	purged := 0
	for len(expired) > 0 {
		batch := expired
		if len(batch) > maxBatchSize {
			batch = batch[:maxBatchSize]
		}
		if err := s.repo.DeleteBatch(ctx, batch); err != nil {
			return purged, err
		}
		purged += len(batch)
		expired = expired[len(batch):]
	}

	if purged > 0 {
		s.log.WithField("purged", purged).Info("purged expired access codes")
	}
	return purged, nil
}
