// Package diary implements CRUD for dated journal entries.
package diary

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/pkg/clock"
	"github.com/go-crm-api/internal/pkg/id"
	"github.com/go-crm-api/internal/pkg/validate"
)

type Service interface {
	Create(ctx context.Context, req domain.DiaryEntryInput, actor domain.Actor) (*domain.DiaryEntry, error)
	Get(ctx context.Context, entryID string) (*domain.DiaryEntry, error)
	List(ctx context.Context) ([]domain.DiaryEntry, error)
	Update(ctx context.Context, entryID string, req domain.DiaryEntryInput, actor domain.Actor) (*domain.DiaryEntry, error)
	Delete(ctx context.Context, entryID string, actor domain.Actor) error
}

type diaryStore interface {
	Put(ctx context.Context, e *domain.DiaryEntry) error
	Get(ctx context.Context, entryID string) (*domain.DiaryEntry, error)
	ScanLive(ctx context.Context) ([]domain.DiaryEntry, error)
	Update(ctx context.Context, entryID string, updates map[string]interface{}) error
}

type service struct {
	entries diaryStore
	clock   clock.Clock
}

func NewService(entries diaryStore, clk clock.Clock) Service {
	return &service{entries: entries, clock: clk}
}

func (s *service) Create(ctx context.Context, req domain.DiaryEntryInput, actor domain.Actor) (*domain.DiaryEntry, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}
	now := s.clock.Now()
	entryDate := now
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}
	e := &domain.DiaryEntry{
		EntryID:   id.New(),
		Title:     req.Title,
		Body:      req.Body,
		EntryDate: entryDate,
		Audit:     domain.NewAudit(actor, now),
	}
	if err := s.entries.Put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Get(ctx context.Context, entryID string) (*domain.DiaryEntry, error) {
	e, err := s.entries.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e.IsDeleted() {
		return nil, fmt.Errorf("diary entry %s: %w", entryID, domain.ErrNotFound)
	}
	return e, nil
}

// List returns live entries newest first.
func (s *service) List(ctx context.Context) ([]domain.DiaryEntry, error) {
	entries, err := s.entries.ScanLive(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].EntryDate.After(entries[j].EntryDate)
	})
	return entries, nil
}

func (s *service) Update(ctx context.Context, entryID string, req domain.DiaryEntryInput, actor domain.Actor) (*domain.DiaryEntry, error) {
	e, err := s.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	updates := domain.UpdateStamps(actor, s.clock.Now())
	if req.Title != "" {
		updates["title"] = req.Title
		e.Title = req.Title
	}
	if req.Body != "" {
		updates["body"] = req.Body
		e.Body = req.Body
	}
	if req.EntryDate != nil {
		updates["entry_date"] = *req.EntryDate
		e.EntryDate = *req.EntryDate
	}
	if err := s.entries.Update(ctx, entryID, updates); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, entryID string, actor domain.Actor) error {
	if _, err := s.Get(ctx, entryID); err != nil {
		return err
	}
	return s.entries.Update(ctx, entryID, domain.DeleteStamps(actor, s.clock.Now()))
}
