package services

import (
	"context"
	"errors"
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
	"github.com/contazen/erp_ledger_core/internal/utils/accounting"
)

var (
	ErrUnbalancedEntry = errors.New("ledger entry debits and credits do not balance")
	ErrNoLines         = errors.New("ledger entry must have at least one line")
)

const (
	stepBalanceProjection = "balance_projection"
	stepAuditPublish      = "audit_publish"
)

// ledgerService provides the double-entry ledger core operations.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	balanceRepo portsrepo.BalanceRepositoryFacade
	audit       portssvc.AuditPublisher // optional; nil disables audit events
}

// NewLedgerService creates a new LedgerService. audit may be nil.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, balanceRepo portsrepo.BalanceRepositoryFacade, audit portssvc.AuditPublisher) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		balanceRepo: balanceRepo,
		audit:       audit,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateCreateRequest collects every structural violation of a create
// request. The balance invariant is checked separately so it can carry the
// computed totals.
func validateCreateRequest(req dto.CreateLedgerEntryRequest) []string {
	var reasons []string
	if req.CompanyID == "" {
		reasons = append(reasons, "company ID is required")
	}
	if !req.EntryType.IsValid() {
		reasons = append(reasons, fmt.Sprintf("entry type %q is not a known type", req.EntryType))
	}
	if req.Description == "" {
		reasons = append(reasons, "entry description is required")
	}
	if len(req.Lines) == 0 {
		reasons = append(reasons, ErrNoLines.Error())
	}
	for i, l := range req.Lines {
		if l.AccountCode == "" {
			reasons = append(reasons, fmt.Sprintf("line %d: account code is required", i+1))
		}
		probe := domain.LedgerLine{DebitAmount: l.Debit, CreditAmount: l.Credit}
		if !probe.IsOneSided() {
			reasons = append(reasons, fmt.Sprintf("line %d: exactly one of debit and credit must be positive", i+1))
		}
	}
	return reasons
}

// CreateEntry validates, persists and returns a new ledger entry.
// Implements portssvc.LedgerWriterSvc.
func (s *ledgerService) CreateEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, creatorUserID string) (*domain.LedgerEntry, []domain.DegradedOperation, error) {
	logger := logging.FromCtx(ctx)

	if reasons := validateCreateRequest(req); len(reasons) > 0 {
		return nil, nil, apperrors.NewValidationError(reasons)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	lines := make([]domain.LedgerLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.LedgerLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountCode:  l.AccountCode,
			DebitAmount:  l.Debit,
			CreditAmount: l.Credit,
			Description:  l.Description,
			AuditFields:  audit,
		}
	}

	// Debits must equal credits within tolerance before anything touches
	// the store, no matter what validated the lines upstream.
	debits, credits := accounting.EntryBalance(lines)
	if !accounting.IsBalanced(debits, credits) {
		return nil, nil, fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			ErrUnbalancedEntry, debits.String(), credits.String())
	}

	// Retried creates with the same key return the original entry untouched.
	if req.IdempotencyKey != nil && *req.IdempotencyKey != "" {
		existing, err := s.ledgerRepo.FindEntryByIdempotencyKey(ctx, req.CompanyID, *req.IdempotencyKey)
		if err == nil {
			existingLines, lerr := s.ledgerRepo.FindLinesByEntryID(ctx, existing.EntryID)
			if lerr != nil {
				return nil, nil, fmt.Errorf("failed to load lines for entry %s: %w", existing.EntryID, lerr)
			}
			existing.Lines = existingLines
			logger.Info("Idempotency key matched an existing entry", slog.String("entry_id", existing.EntryID))
			return existing, nil, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("failed to check idempotency key: %w", err)
		}
	}

	entry := domain.LedgerEntry{
		EntryID:         entryID,
		CompanyID:       req.CompanyID,
		FranchiseID:     req.FranchiseID,
		EntryType:       req.EntryType,
		ReferenceNumber: req.ReferenceNumber,
		IdempotencyKey:  req.IdempotencyKey,
		Amount:          req.Amount,
		Description:     req.Description,
		Status:          domain.EntryPosted,
		AuditFields:     audit,
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to save ledger entry", slog.String("error", err.Error()), slog.String("company_id", req.CompanyID))
		return nil, nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}

	// Read back so the caller gets the rows as persisted, not as echoed.
	persisted, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		// The entry is durable; a read-back failure only degrades the response.
		logger.Warn("Entry persisted but read-back failed", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		entry.Lines = lines
		persisted = &entry
	} else {
		persistedLines, lerr := s.ledgerRepo.FindLinesByEntryID(ctx, entryID)
		if lerr != nil {
			logger.Warn("Entry persisted but line read-back failed", slog.String("entry_id", entryID), slog.String("error", lerr.Error()))
			persisted.Lines = lines
		} else {
			persisted.Lines = persistedLines
		}
	}

	degraded := s.postCommit(ctx, *persisted, domain.AuditEntryCreated, creatorUserID)

	logger.Info("Ledger entry created",
		slog.String("entry_id", entryID),
		slog.String("company_id", req.CompanyID),
		slog.String("entry_type", string(req.EntryType)),
		slog.Int("degraded_steps", len(degraded)))
	return persisted, degraded, nil
}

// postCommit runs the best-effort steps that follow a durable write: the
// period balance projection and the audit event. Failures are collected, not
// propagated; the entry is already committed.
func (s *ledgerService) postCommit(ctx context.Context, entry domain.LedgerEntry, action domain.AuditAction, userID string) []domain.DegradedOperation {
	logger := logging.FromCtx(ctx)
	var degraded []domain.DegradedOperation

	deltas := make(map[string]domain.BalanceDelta, len(entry.Lines))
	for _, l := range entry.Lines {
		d := deltas[l.AccountCode]
		d.Debit = d.Debit.Add(l.DebitAmount)
		d.Credit = d.Credit.Add(l.CreditAmount)
		deltas[l.AccountCode] = d
	}
	year, month := entry.CreatedAt.Year(), int(entry.CreatedAt.Month())
	if err := s.balanceRepo.ApplyEntryDeltas(ctx, entry.CompanyID, year, month, deltas); err != nil {
		logger.Warn("Balance projection failed after commit",
			slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
		degraded = append(degraded, domain.DegradedOperation{Step: stepBalanceProjection, Reason: err.Error()})
	}

	if s.audit != nil {
		event := domain.AuditEvent{
			Action:          action,
			EntryID:         entry.EntryID,
			CompanyID:       entry.CompanyID,
			EntryType:       entry.EntryType,
			Amount:          entry.Amount,
			ReferenceNumber: entry.ReferenceNumber,
			UserID:          userID,
			OccurredAt:      time.Now().UTC(),
		}
		if err := s.audit.Publish(ctx, event); err != nil {
			logger.Warn("Audit publish failed after commit",
				slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
			degraded = append(degraded, domain.DegradedOperation{Step: stepAuditPublish, Reason: err.Error()})
		}
	}

	return degraded
}

// ReverseEntry posts the mirror of a previously posted entry.
// Implements portssvc.LedgerWriterSvc.
func (s *ledgerService) ReverseEntry(ctx context.Context, companyID, entryID, reason, userID string) (string, []domain.DegradedOperation, error) {
	logger := logging.FromCtx(ctx)

	original, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, apperrors.ErrNotFound
		}
		return "", nil, fmt.Errorf("failed to load entry %s for reversal: %w", entryID, err)
	}
	if original.CompanyID != companyID {
		// Obscure cross-company existence.
		return "", nil, apperrors.ErrNotFound
	}
	if original.Status != domain.EntryPosted {
		return "", nil, fmt.Errorf("%w: entry status is %s, expected POSTED", apperrors.ErrConflict, original.Status)
	}
	if original.OriginalEntryID != nil {
		return "", nil, fmt.Errorf("%w: cannot reverse an entry that is itself a reversal", apperrors.ErrConflict)
	}

	originalLines, err := s.ledgerRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load lines of entry %s: %w", entryID, err)
	}

	now := time.Now().UTC()
	newEntryID := uuid.NewString()
	// Creator carries over from the original: the reversal corrects that
	// user's posting.
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     original.CreatedBy,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	mirror := make([]domain.LedgerLine, len(originalLines))
	for i, l := range originalLines {
		mirror[i] = domain.LedgerLine{
			LineID:       uuid.NewString(),
			EntryID:      newEntryID,
			AccountCode:  l.AccountCode,
			DebitAmount:  l.CreditAmount,
			CreditAmount: l.DebitAmount,
			Description:  "Reversal: " + l.Description,
			AuditFields:  audit,
		}
	}

	reference := "REV-" + entryID
	if original.ReferenceNumber != nil && *original.ReferenceNumber != "" {
		reference = "REV-" + *original.ReferenceNumber
	}

	reversal := domain.LedgerEntry{
		EntryID:         newEntryID,
		CompanyID:       companyID,
		FranchiseID:     original.FranchiseID,
		EntryType:       domain.EntryReversal,
		ReferenceNumber: &reference,
		Amount:          original.Amount,
		Description:     fmt.Sprintf("Reversal of entry %s: %s", entryID, reason),
		Status:          domain.EntryPosted,
		OriginalEntryID: &original.EntryID,
		AuditFields:     audit,
	}

	// A mirror of a balanced entry is balanced unless the stored rows are
	// inconsistent, so the invariant is re-checked before writing.
	debits, credits := accounting.EntryBalance(mirror)
	if !accounting.IsBalanced(debits, credits) {
		return "", nil, fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			ErrUnbalancedEntry, debits.String(), credits.String())
	}

	if err := s.ledgerRepo.SaveReversal(ctx, reversal, mirror, original.EntryID); err != nil {
		logger.Error("Failed to save reversal", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		if errors.Is(err, apperrors.ErrConflict) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("failed to save reversal of entry %s: %w", entryID, err)
	}

	reversal.Lines = mirror
	degraded := s.postCommit(ctx, reversal, domain.AuditEntryReversed, userID)

	logger.Info("Ledger entry reversed",
		slog.String("original_entry_id", entryID),
		slog.String("reversing_entry_id", newEntryID))
	return newEntryID, degraded, nil
}

// GetEntryByID retrieves an entry with lines populated.
// Implements portssvc.LedgerReaderSvc.
func (s *ledgerService) GetEntryByID(ctx context.Context, companyID, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	lines, err := s.ledgerRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines of entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}
