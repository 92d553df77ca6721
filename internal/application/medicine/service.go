// Package medicine implements CRUD for the medicine list.
package medicine

import (
	"context"
	"fmt"

	"github.com/go-crm-api/internal/domain"
	"github.com/go-crm-api/internal/pkg/clock"
	"github.com/go-crm-api/internal/pkg/id"
	"github.com/go-crm-api/internal/pkg/validate"
)

type Service interface {
	Create(ctx context.Context, req domain.MedicineInput, actor domain.Actor) (*domain.Medicine, error)
	Get(ctx context.Context, medicineID string) (*domain.Medicine, error)
	List(ctx context.Context) ([]domain.Medicine, error)
	Update(ctx context.Context, medicineID string, req domain.MedicineInput, actor domain.Actor) (*domain.Medicine, error)
	Delete(ctx context.Context, medicineID string, actor domain.Actor) error
}

type medicineStore interface {
	Put(ctx context.Context, m *domain.Medicine) error
	Get(ctx context.Context, medicineID string) (*domain.Medicine, error)
	ScanLive(ctx context.Context) ([]domain.Medicine, error)
	Update(ctx context.Context, medicineID string, updates map[string]interface{}) error
}

type service struct {
	medicines medicineStore
	clock     clock.Clock
}

func NewService(medicines medicineStore, clk clock.Clock) Service {
	return &service{medicines: medicines, clock: clk}
}

func (s *service) Create(ctx context.Context, req domain.MedicineInput, actor domain.Actor) (*domain.Medicine, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}
	m := &domain.Medicine{
		MedicineID: id.New(),
		Name:       req.Name,
		Dosage:     req.Dosage,
		Schedule:   req.Schedule,
		Notes:      req.Notes,
		Audit:      domain.NewAudit(actor, s.clock.Now()),
	}
	if err := s.medicines.Put(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Get(ctx context.Context, medicineID string) (*domain.Medicine, error) {
	m, err := s.medicines.Get(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	if m.IsDeleted() {
		return nil, fmt.Errorf("medicine %s: %w", medicineID, domain.ErrNotFound)
	}
	return m, nil
}

func (s *service) List(ctx context.Context) ([]domain.Medicine, error) {
	return s.medicines.ScanLive(ctx)
}

func (s *service) Update(ctx context.Context, medicineID string, req domain.MedicineInput, actor domain.Actor) (*domain.Medicine, error) {
	m, err := s.Get(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	updates := domain.UpdateStamps(actor, s.clock.Now())
	if req.Name != "" {
		updates["name"] = req.Name
		m.Name = req.Name
	}
	if req.Dosage != "" {
		updates["dosage"] = req.Dosage
		m.Dosage = req.Dosage
	}
	if req.Schedule != "" {
		updates["schedule"] = req.Schedule
		m.Schedule = req.Schedule
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
		m.Notes = req.Notes
	}
	if err := s.medicines.Update(ctx, medicineID, updates); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Delete(ctx context.Context, medicineID string, actor domain.Actor) error {
	if _, err := s.Get(ctx, medicineID); err != nil {
		return err
	}
	return s.medicines.Update(ctx, medicineID, domain.DeleteStamps(actor, s.clock.Now()))
}
