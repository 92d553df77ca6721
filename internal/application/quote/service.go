// Package quote implements the quotes catalog. Listing is category-filtered
// and paged at a fixed size; short search terms are ignored.
package quote

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/pkg/clock"
	"github.com/go-crm-api/internal/pkg/id"
	"github.com/go-crm-api/internal/pkg/validate"
)

const (
	pageSize        = 25
	minSearchLength = 3
)

type Service interface {
	Create(ctx context.Context, req domain.QuoteInput, actor domain.Actor) (*domain.Quote, error)
	Get(ctx context.Context, quoteID string) (*domain.Quote, error)
	List(ctx context.Context, q domain.QuoteListQuery) (*domain.QuotePage, error)
	Update(ctx context.Context, quoteID string, req domain.QuoteInput, actor domain.Actor) (*domain.Quote, error)
	Delete(ctx context.Context, quoteID string, actor domain.Actor) error
}

type quoteStore interface {
	Put(ctx context.Context, q *domain.Quote) error
	Get(ctx context.Context, quoteID string) (*domain.Quote, error)
	ScanLive(ctx context.Context) ([]domain.Quote, error)
	Update(ctx context.Context, quoteID string, updates map[string]interface{}) error
}

type service struct {
	quotes quoteStore
	clock  clock.Clock
}

func NewService(quotes quoteStore, clk clock.Clock) Service {
	return &service{quotes: quotes, clock: clk}
}

func (s *service) Create(ctx context.Context, req domain.QuoteInput, actor domain.Actor) (*domain.Quote, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	q := &domain.Quote{
		QuoteID:     id.New(),
		SubCategory: req.SubCategory,
		WrittenBy:   req.WrittenBy,
		Source:      req.Source,
		Text:        req.Text,
		Enabled:     enabled,
		Audit:       domain.NewAudit(actor, s.clock.Now()),
	}
	if err := s.quotes.Put(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *service) Get(ctx context.Context, quoteID string) (*domain.Quote, error) {
	q, err := s.quotes.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if q.IsDeleted() {
		return nil, fmt.Errorf("quote %s: %w", quoteID, domain.ErrNotFound)
	}
	return q, nil
}

func (s *service) List(ctx context.Context, query domain.QuoteListQuery) (*domain.QuotePage, error) {
	quotes, err := s.quotes.ScanLive(ctx)
	if err != nil {
		return nil, err
	}

	filtered := quotes[:0]
	search := strings.ToLower(query.Search)
	for _, q := range quotes {
		if !q.Enabled {
			continue
		}
		if query.Category != "" && q.SubCategory != query.Category {
			continue
		}
		if len(search) >= minSearchLength &&
			!strings.Contains(strings.ToLower(q.Text), search) &&
			!strings.Contains(strings.ToLower(q.WrittenBy), search) &&
			!strings.Contains(strings.ToLower(q.SubCategory), search) {
			continue
		}
		filtered = append(filtered, q)
	}

	page := query.Page
	if page <= 0 {
		page = 1
	}
	total := len(filtered)
	pages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &domain.QuotePage{
		Quotes:      filtered[start:end],
		TotalPages:  pages,
		CurrentPage: page,
	}, nil
}

func (s *service) Update(ctx context.Context, quoteID string, req domain.QuoteInput, actor domain.Actor) (*domain.Quote, error) {
	q, err := s.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	updates := domain.UpdateStamps(actor, s.clock.Now())
	if req.SubCategory != "" {
		updates["sub_category"] = req.SubCategory
		q.SubCategory = req.SubCategory
	}
	if req.WrittenBy != "" {
		updates["written_by"] = req.WrittenBy
		q.WrittenBy = req.WrittenBy
	}
	if req.Source != "" {
		updates["source"] = req.Source
		q.Source = req.Source
	}
	if req.Text != "" {
		updates["quote"] = req.Text
		q.Text = req.Text
	}
	if req.Enabled != nil {
		updates["sts"] = *req.Enabled
		q.Enabled = *req.Enabled
	}
	if err := s.quotes.Update(ctx, quoteID, updates); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *service) Delete(ctx context.Context, quoteID string, actor domain.Actor) error {
	if _, err := s.Get(ctx, quoteID); err != nil {
		return err
	}
	return s.quotes.Update(ctx, quoteID, domain.DeleteStamps(actor, s.clock.Now()))
}
