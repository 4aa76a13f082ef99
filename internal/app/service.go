// Package service translates trademark operations into registry calls and
// maps registry records back into the API's record shape.
package service

import (
	"context"
	"time"

	"github.com/okian/trademarks/internal/adapters/registry"
	"github.com/okian/trademarks/internal/domain/model"
	"github.com/okian/trademarks/pkg/logger"
)

// Registry is the outbound side of the service.
type Registry interface {
	Create(ctx context.Context, req model.CreateRequest) (registry.Record, error)
	Get(ctx context.Context, id string) (registry.Record, error)
	Search(ctx context.Context, query string, year *int) ([]registry.Record, error)
	Update(ctx context.Context, id string, req model.UpdateRequest) (registry.Record, error)
	Delete(ctx context.Context, id string) error
}

// Service implements the trademark operations exposed over HTTP.
// It holds no state between calls.
type Service struct {
	registry Registry
	logger   logger.Logger
	now      func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service on top of reg.
func New(reg Registry, opts ...Option) *Service {
	s := &Service{
		registry: reg,
		logger:   logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTrademark registers a trademark. The registry supplies the id; the
// registration date, expiration date and status are always set here.
func (s *Service) CreateTrademark(ctx context.Context, req model.CreateRequest) (model.Trademark, error) {
	rec, err := s.registry.Create(ctx, req)
	if err != nil {
		return model.Trademark{}, wrap(OpCreate, err)
	}
	tm, err := rec.Core()
	if err != nil {
		return model.Trademark{}, wrap(OpCreate, err)
	}

	now := s.now()
	expires := now.Add(model.RegistrationTerm)
	tm.RegistrationDate = now
	tm.ExpirationDate = &expires
	tm.Status = model.StatusPending

	s.logger.Info(ctx, "trademark created", logger.String("id", tm.ID), logger.String("owner", tm.Owner))
	return tm, nil
}

// GetTrademark fetches one trademark by its registry id.
func (s *Service) GetTrademark(ctx context.Context, id string) (model.Trademark, error) {
	rec, err := s.registry.Get(ctx, id)
	if err != nil {
		return model.Trademark{}, wrap(OpGet, err)
	}
	tm, err := rec.Trademark()
	return tm, wrap(OpGet, err)
}

// SearchTrademarks queries the registry. A nil year searches all years.
func (s *Service) SearchTrademarks(ctx context.Context, query string, year *int) ([]model.Trademark, error) {
	recs, err := s.registry.Search(ctx, query, year)
	if err != nil {
		return nil, wrap(OpSearch, err)
	}
	out := make([]model.Trademark, 0, len(recs))
	for _, rec := range recs {
		tm, err := rec.Trademark()
		if err != nil {
			return nil, wrap(OpSearch, err)
		}
		out = append(out, tm)
	}
	return out, nil
}

// UpdateTrademark applies a partial update and returns the registry's view.
func (s *Service) UpdateTrademark(ctx context.Context, id string, req model.UpdateRequest) (model.Trademark, error) {
	if req.Empty() {
		s.logger.Debug(ctx, "update carries no fields", logger.String("id", id))
	}
	rec, err := s.registry.Update(ctx, id, req)
	if err != nil {
		return model.Trademark{}, wrap(OpUpdate, err)
	}
	tm, err := rec.Trademark()
	if err != nil {
		return model.Trademark{}, wrap(OpUpdate, err)
	}
	s.logger.Info(ctx, "trademark updated", logger.String("id", id))
	return tm, nil
}

// DeleteTrademark removes a trademark from the registry.
func (s *Service) DeleteTrademark(ctx context.Context, id string) error {
	if err := s.registry.Delete(ctx, id); err != nil {
		return wrap(OpDelete, err)
	}
	s.logger.Info(ctx, "trademark deleted", logger.String("id", id))
	return nil
}
