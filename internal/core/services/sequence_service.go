package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/contazen/erp_ledger_core/internal/apperrors"
	"github.com/contazen/erp_ledger_core/internal/core/domain"
	portsrepo "github.com/contazen/erp_ledger_core/internal/core/ports/repositories"
	portssvc "github.com/contazen/erp_ledger_core/internal/core/ports/services"
	"github.com/contazen/erp_ledger_core/internal/dto"
	"github.com/contazen/erp_ledger_core/internal/platform/logging"
)

// sequenceService allocates gapless, formatted document numbers. All
// serialization happens in the repository, inside the counter row's lock;
// this layer only formats and validates.
type sequenceService struct {
	sequenceRepo portsrepo.SequenceRepositoryFacade
}

// NewSequenceService creates a new SequenceService.
func NewSequenceService(sequenceRepo portsrepo.SequenceRepositoryFacade) portssvc.SequenceSvcFacade {
	return &sequenceService{sequenceRepo: sequenceRepo}
}

// Ensure sequenceService implements the facade.
var _ portssvc.SequenceSvcFacade = (*sequenceService)(nil)

// GetNextNumber allocates the next number of (company, series).
// Implements portssvc.SequenceSvcFacade.
func (s *sequenceService) GetNextNumber(ctx context.Context, companyID, series string) (*dto.SequenceNumberResult, error) {
	logger := logging.FromCtx(ctx)

	if companyID == "" || series == "" {
		return nil, apperrors.NewValidationError([]string{"company ID and series are required"})
	}

	counter, allocated, err := s.sequenceRepo.AllocateNextNumber(ctx, companyID, series)
	if err != nil {
		// NotFound and ConcurrencyTimeout pass through untouched so callers
		// can branch on them.
		return nil, err
	}

	logger.Debug("Document number allocated",
		slog.String("company_id", companyID),
		slog.String("series", series),
		slog.Int64("number", allocated))
	return &dto.SequenceNumberResult{
		FormattedNumber: counter.FormatNumber(allocated),
		NextNumber:      allocated,
	}, nil
}

// CreateSeries provisions a new counter row.
// Implements portssvc.SequenceSvcFacade.
func (s *sequenceService) CreateSeries(ctx context.Context, req dto.CreateSequenceRequest) error {
	var reasons []string
	if req.CompanyID == "" {
		reasons = append(reasons, "company ID is required")
	}
	if req.Series == "" {
		reasons = append(reasons, "series is required")
	}
	if req.StartAt < 0 {
		reasons = append(reasons, "start number cannot be negative")
	}
	if len(reasons) > 0 {
		return apperrors.NewValidationError(reasons)
	}

	start := req.StartAt
	if start == 0 {
		start = 1
	}
	year := req.Year
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	now := time.Now().UTC()
	counter := domain.SequenceCounter{
		SequenceID: uuid.NewString(),
		CompanyID:  req.CompanyID,
		Series:     req.Series,
		Prefix:     req.Prefix,
		Suffix:     req.Suffix,
		Year:       year,
		LastNumber: start - 1,
		NextNumber: start,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.sequenceRepo.SaveCounter(ctx, counter); err != nil {
		return fmt.Errorf("failed to create series %s/%s: %w", req.CompanyID, req.Series, err)
	}
	return nil
}
