// Package note implements CRUD for free-form notes.
package note

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
	Create(ctx context.Context, req domain.CreateNoteRequest, actor domain.Actor) (*domain.Note, error)
	Get(ctx context.Context, noteID string) (*domain.Note, error)
	List(ctx context.Context) ([]domain.Note, error)
	Update(ctx context.Context, noteID string, req domain.UpdateNoteRequest, actor domain.Actor) (*domain.Note, error)
	Delete(ctx context.Context, noteID string, actor domain.Actor) error
}

type noteStore interface {
	Put(ctx context.Context, n *domain.Note) error
	Get(ctx context.Context, noteID string) (*domain.Note, error)
	ScanLive(ctx context.Context) ([]domain.Note, error)
	Update(ctx context.Context, noteID string, updates map[string]interface{}) error
}

type service struct {
	notes noteStore
	clock clock.Clock
}

func NewService(notes noteStore, clk clock.Clock) Service {
	return &service{notes: notes, clock: clk}
}

func (s *service) Create(ctx context.Context, req domain.CreateNoteRequest, actor domain.Actor) (*domain.Note, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}
	n := &domain.Note{
		NoteID:      id.New(),
		Title:       req.Title,
		Description: req.Description,
		IsFavourite: req.IsFavourite,
		Tag:         req.Tag,
		Audit:       domain.NewAudit(actor, s.clock.Now()),
	}
	if err := s.notes.Put(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) Get(ctx context.Context, noteID string) (*domain.Note, error) {
	n, err := s.notes.Get(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if n.IsDeleted() {
		return nil, fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
	}
	return n, nil
}

// List returns live notes newest first.
func (s *service) List(ctx context.Context) ([]domain.Note, error) {
	notes, err := s.notes.ScanLive(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedOn.After(notes[j].CreatedOn)
	})
	return notes, nil
}

func (s *service) Update(ctx context.Context, noteID string, req domain.UpdateNoteRequest, actor domain.Actor) (*domain.Note, error) {
	n, err := s.Get(ctx, noteID)
	if err != nil {
		return nil, err
	}
	updates := domain.UpdateStamps(actor, s.clock.Now())
	if req.Title != nil {
		updates["title"] = *req.Title
		n.Title = *req.Title
	}
	if req.Description != nil {
		updates["desc"] = *req.Description
		n.Description = *req.Description
	}
	if req.IsFavourite != nil {
		updates["is_fav"] = *req.IsFavourite
		n.IsFavourite = *req.IsFavourite
	}
	if req.Tag != nil {
		updates["tag"] = *req.Tag
		n.Tag = *req.Tag
	}
	if err := s.notes.Update(ctx, noteID, updates); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) Delete(ctx context.Context, noteID string, actor domain.Actor) error {
	if _, err := s.Get(ctx, noteID); err != nil {
		return err
	}
	return s.notes.Update(ctx, noteID, domain.DeleteStamps(actor, s.clock.Now()))
}
