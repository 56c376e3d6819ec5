package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/repository"
)

type instrumentService struct {
	instrumentRepo repository.InstrumentRepository
	ownershipRepo  repository.OwnershipRepository
}

func NewInstrumentService(instrumentRepo repository.InstrumentRepository, ownershipRepo repository.OwnershipRepository) InstrumentService {
	return &instrumentService{instrumentRepo: instrumentRepo, ownershipRepo: ownershipRepo}
}

func (s *instrumentService) AddInstrument(ctx context.Context, instrument *domain.Instrument) error {
	if strings.TrimSpace(instrument.Name) == "" || strings.TrimSpace(instrument.Category) == "" {
		return domain.Validationf("name and category are required")
	}
	instrument.Category = strings.ToLower(strings.TrimSpace(instrument.Category))

	if err := s.instrumentRepo.Create(ctx, instrument); err != nil {
		return domain.Internal(err)
	}
	return nil
}

func (s *instrumentService) GetInstrument(ctx context.Context, id int32) (*domain.Instrument, error) {
	instrument, err := s.instrumentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("instrument %d not found", id)
		}
		return nil, domain.Internal(err)
	}
	return instrument, nil
}

func (s *instrumentService) ListInstruments(ctx context.Context, category string) ([]domain.Instrument, error) {
	instruments, err := s.instrumentRepo.List(ctx, strings.ToLower(strings.TrimSpace(category)))
	if err != nil {
		return nil, domain.Internal(err)
	}
	return instruments, nil
}

func (s *instrumentService) ListAvailable(ctx context.Context) ([]domain.Ownership, error) {
	ownerships, err := s.ownershipRepo.ListAvailable(ctx)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return ownerships, nil
}
