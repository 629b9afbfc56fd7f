package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/contazen/erp_ledger_core/internal/apperrors"
	"github.com/contazen/erp_ledger_core/internal/core/domain"
	portsrepo "github.com/contazen/erp_ledger_core/internal/core/ports/repositories"
	portssvc "github.com/contazen/erp_ledger_core/internal/core/ports/services"
	"github.com/contazen/erp_ledger_core/internal/core/services"
	"github.com/contazen/erp_ledger_core/internal/dto"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

// Ensure MockLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveReversal(ctx context.Context, reversal domain.LedgerEntry, lines []domain.LedgerLine, originalEntryID string) error {
	args := m.Called(ctx, reversal, lines, originalEntryID)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByIdempotencyKey(ctx context.Context, companyID, key string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, companyID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

// --- Mock BalanceRepository ---
type MockBalanceRepository struct {
	mock.Mock
}

// Ensure MockBalanceRepository implements portsrepo.BalanceRepositoryFacade
var _ portsrepo.BalanceRepositoryFacade = (*MockBalanceRepository)(nil)

func (m *MockBalanceRepository) ApplyEntryDeltas(ctx context.Context, companyID string, year, month int, deltas map[string]domain.BalanceDelta) error {
	args := m.Called(ctx, companyID, year, month, deltas)
	return args.Error(0)
}

func (m *MockBalanceRepository) FindPeriodBalance(ctx context.Context, companyID, accountCode string, year, month int) (*domain.PeriodBalance, error) {
	args := m.Called(ctx, companyID, accountCode, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodBalance), args.Error(1)
}

// --- Mock AuditPublisher ---
type MockAuditPublisher struct {
	mock.Mock
}

// Ensure MockAuditPublisher implements portssvc.AuditPublisher
var _ portssvc.AuditPublisher = (*MockAuditPublisher)(nil)

func (m *MockAuditPublisher) Publish(ctx context.Context, event domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockBalanceRepo *MockBalanceRepository
	mockAudit       *MockAuditPublisher
	service         portssvc.LedgerSvcFacade
	ctx             context.Context
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.mockBalanceRepo = new(MockBalanceRepository)
	s.mockAudit = new(MockAuditPublisher)
	s.service = services.NewLedgerService(s.mockLedgerRepo, s.mockBalanceRepo, s.mockAudit)
	s.ctx = context.Background()
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validCreateRequest() dto.CreateLedgerEntryRequest {
	return dto.CreateLedgerEntryRequest{
		CompanyID:   "comp-1",
		EntryType:   domain.EntrySales,
		Amount:      dec("119.00"),
		Description: "Sales invoice FCT1/2026",
		Lines: []dto.LedgerLineInput{
			{AccountCode: "4111", Debit: dec("119.00")},
			{AccountCode: "707", Credit: dec("100.00")},
			{AccountCode: "4427", Credit: dec("19.00")},
		},
	}
}

func (s *LedgerServiceTestSuite) TestCreateEntry_Success() {
	req := validCreateRequest()

	persisted := &domain.LedgerEntry{}
	s.mockLedgerRepo.On("SaveEntry", s.ctx, mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("[]domain.LedgerLine")).
		Run(func(args mock.Arguments) {
			*persisted = args.Get(1).(domain.LedgerEntry)
			lines := args.Get(2).([]domain.LedgerLine)
			s.Require().Len(lines, 3)
			for _, l := range lines {
				s.Equal(persisted.EntryID, l.EntryID)
				s.True(l.IsOneSided())
			}
		}).Return(nil).Once()
	readBackLines := []domain.LedgerLine{
		{LineID: "L1", AccountCode: "4111", DebitAmount: dec("119.00")},
		{LineID: "L2", AccountCode: "707", CreditAmount: dec("100.00")},
		{LineID: "L3", AccountCode: "4427", CreditAmount: dec("19.00")},
	}
	s.mockLedgerRepo.On("FindEntryByID", s.ctx, mock.AnythingOfType("string")).Return(persisted, nil).Once()
	s.mockLedgerRepo.On("FindLinesByEntryID", s.ctx, mock.AnythingOfType("string")).Return(readBackLines, nil).Once()
	s.mockBalanceRepo.On("ApplyEntryDeltas", s.ctx, "comp-1", mock.AnythingOfType("int"), mock.AnythingOfType("int"), mock.Anything).Return(nil).Once()
	s.mockAudit.On("Publish", s.ctx, mock.MatchedBy(func(e domain.AuditEvent) bool {
		return e.Action == domain.AuditEntryCreated && e.CompanyID == "comp-1"
	})).Return(nil).Once()

	entry, degraded, err := s.service.CreateEntry(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Empty(degraded)
	s.Equal(domain.EntryPosted, entry.Status)
	s.Equal("user-1", entry.CreatedBy)
	s.Len(entry.Lines, 3)
	s.mockLedgerRepo.AssertExpectations(s.T())
	s.mockBalanceRepo.AssertExpectations(s.T())
	s.mockAudit.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestCreateEntry_ImbalancedIsRejectedBeforePersist() {
	req := validCreateRequest()
	req.Lines[1].Credit = dec("90.00") // debits 119.00 vs credits 109.00

	entry, degraded, err := s.service.CreateEntry(s.ctx, req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrUnbalancedEntry)
	s.Contains(err.Error(), "119")
	s.Contains(err.Error(), "109")
	s.Nil(entry)
	s.Empty(degraded)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCreateEntry_CollectsAllValidationFailures() {
	req := dto.CreateLedgerEntryRequest{
		EntryType: "BOGUS",
		Lines: []dto.LedgerLineInput{
			{AccountCode: "", Debit: dec("10.00"), Credit: dec("10.00")},
		},
	}

	entry, _, err := s.service.CreateEntry(s.ctx, req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	var verr *apperrors.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Reasons, "company ID is required")
	s.Contains(verr.Reasons, "entry description is required")
	s.Contains(verr.Reasons, "line 1: account code is required")
	s.Contains(verr.Reasons, "line 1: exactly one of debit and credit must be positive")
	s.Nil(entry)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCreateEntry_IdempotencyKeyReturnsExistingEntry() {
	req := validCreateRequest()
	key := "txn-42"
	req.IdempotencyKey = &key

	existing := &domain.LedgerEntry{
		EntryID:   "existing-1",
		CompanyID: "comp-1",
		Status:    domain.EntryPosted,
	}
	existingLines := []domain.LedgerLine{{LineID: "L1", EntryID: "existing-1"}}
	s.mockLedgerRepo.On("FindEntryByIdempotencyKey", s.ctx, "comp-1", "txn-42").Return(existing, nil).Once()
	s.mockLedgerRepo.On("FindLinesByEntryID", s.ctx, "existing-1").Return(existingLines, nil).Once()

	entry, degraded, err := s.service.CreateEntry(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Equal("existing-1", entry.EntryID)
	s.Len(entry.Lines, 1)
	s.Empty(degraded)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCreateEntry_ReportsDegradedProjection() {
	req := validCreateRequest()

	persisted := &domain.LedgerEntry{}
	s.mockLedgerRepo.On("SaveEntry", s.ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { *persisted = args.Get(1).(domain.LedgerEntry) }).
		Return(nil).Once()
	s.mockLedgerRepo.On("FindEntryByID", s.ctx, mock.Anything).Return(persisted, nil).Once()
	s.mockLedgerRepo.On("FindLinesByEntryID", s.ctx, mock.Anything).Return([]domain.LedgerLine{}, nil).Once()
	s.mockBalanceRepo.On("ApplyEntryDeltas", s.ctx, "comp-1", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("projection store is down")).Once()
	s.mockAudit.On("Publish", s.ctx, mock.Anything).Return(nil).Once()

	entry, degraded, err := s.service.CreateEntry(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Require().Len(degraded, 1)
	s.Equal("balance_projection", degraded[0].Step)
	s.Contains(degraded[0].Reason, "projection store is down")
}

func (s *LedgerServiceTestSuite) TestCreateEntry_ReportsDegradedAuditPublish() {
	req := validCreateRequest()

	persisted := &domain.LedgerEntry{}
	s.mockLedgerRepo.On("SaveEntry", s.ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { *persisted = args.Get(1).(domain.LedgerEntry) }).
		Return(nil).Once()
	s.mockLedgerRepo.On("FindEntryByID", s.ctx, mock.Anything).Return(persisted, nil).Once()
	s.mockLedgerRepo.On("FindLinesByEntryID", s.ctx, mock.Anything).Return([]domain.LedgerLine{}, nil).Once()
	s.mockBalanceRepo.On("ApplyEntryDeltas", s.ctx, "comp-1", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	s.mockAudit.On("Publish", s.ctx, mock.Anything).Return(errors.New("broker unreachable")).Once()

	entry, degraded, err := s.service.CreateEntry(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Require().Len(degraded, 1)
	s.Equal("audit_publish", degraded[0].Step)
}

func postedEntry() *domain.LedgerEntry {
	ref := "FCT7/2026"
	return &domain.LedgerEntry{
		EntryID:         "entry-1",
		CompanyID:       "comp-1",
		EntryType:       domain.EntrySales,
		ReferenceNumber: &ref,
		Amount:          dec("119.00"),
		Description:     "Sales invoice FCT7/2026",
		Status:          domain.EntryPosted,
		AuditFields:     domain.AuditFields{CreatedBy: "user-orig"},
	}
}

func (s *LedgerServiceTestSuite) TestReverseEntry_MirrorsLines() {
	original := postedEntry()
	originalLines := []domain.LedgerLine{
		{LineID: "L1", EntryID: "entry-1", AccountCode: "4111", DebitAmount: dec("119.00"), Description: "Receivable"},
		{LineID: "L2", EntryID: "entry-1", AccountCode: "707", CreditAmount: dec("100.00"), Description: "Revenue"},
		{LineID: "L3", EntryID: "entry-1", AccountCode: "4427", CreditAmount: dec("19.00"), Description: "VAT"},
	}
	s.mockLedgerRepo.On("FindEntryByID", s.ctx, "entry-1").Return(original, nil).Once()
	s.mockLedgerRepo.On("FindLinesByEntryID", s.ctx, "entry-1").Return(originalLines, nil).Once()

	var savedReversal domain.LedgerEntry
	s.mockLedgerRepo.On("SaveReversal", s.ctx, mock.AnythingOfType("domain.LedgerEntry"), mock.AnythingOfType("[]domain.LedgerLine"), "entry-1").
		Run(func(args mock.Arguments) {
			savedReversal = args.Get(1).(domain.LedgerEntry)
			mirror := args.Get(2).([]domain.LedgerLine)
			s.Require().Len(mirror, 3)
			s.True(dec("119.00").Equal(mirror[0].CreditAmount))
			s.True(mirror[0].DebitAmount.IsZero())
			s.True(dec("100.00").Equal(mirror[1].DebitAmount))
			s.True(dec("19.00").Equal(mirror[2].DebitAmount))
			s.Equal("Reversal: Receivable", mirror[0].Description)
		}).Return(nil).Once()
	s.mockBalanceRepo.On("ApplyEntryDeltas", s.ctx, "comp-1", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	s.mockAudit.On("Publish", s.ctx, mock.MatchedBy(func(e domain.AuditEvent) bool {
		return e.Action == domain.AuditEntryReversed
	})).Return(nil).Once()

	newID, degraded, err := s.service.ReverseEntry(s.ctx, "comp-1", "entry-1", "wrong VAT rate", "user-admin")

	s.Require().NoError(err)
	s.Equal(savedReversal.EntryID, newID)
	s.Empty(degraded)
	s.Equal(domain.EntryReversal, savedReversal.EntryType)
	s.Require().NotNil(savedReversal.OriginalEntryID)
	s.Equal("entry-1", *savedReversal.OriginalEntryID)
	s.Require().NotNil(savedReversal.ReferenceNumber)
	s.Equal("REV-FCT7/2026", *savedReversal.ReferenceNumber)
	s.Contains(savedReversal.Description, "wrong VAT rate")
	s.Equal("user-orig", savedReversal.CreatedBy)
	s.Equal("user-admin", savedReversal.LastUpdatedBy)
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestReverseEntry_AlreadyReversedConflicts() {
	original := postedEntry()
	original.Status = domain.EntryReversed
	s.mockLedgerRepo.On("FindEntryByID", s.ctx, "entry-1").Return(original, nil).Once()

	_, _, err := s.service.ReverseEntry(s.ctx, "comp-1", "entry-1", "dup", "user-admin")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestReverseEntry_OfAReversalConflicts() {
	original := postedEntry()
	origID := "entry-0"
	original.OriginalEntryID = &origID
	s.mockLedgerRepo.On("FindEntryByID", s.ctx, "entry-1").Return(original, nil).Once()

	_, _, err := s.service.ReverseEntry(s.ctx, "comp-1", "entry-1", "nope", "user-admin")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LedgerServiceTestSuite) TestReverseEntry_CrossCompanyLooksMissing() {
	original := postedEntry()
	s.mockLedgerRepo.On("FindEntryByID", s.ctx, "entry-1").Return(original, nil).Once()

	_, _, err := s.service.ReverseEntry(s.ctx, "other-comp", "entry-1", "reason", "user-admin")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestReverseEntry_LosingConcurrentRaceConflicts() {
	original := postedEntry()
	s.mockLedgerRepo.On("FindEntryByID", s.ctx, "entry-1").Return(original, nil).Once()
	s.mockLedgerRepo.On("FindLinesByEntryID", s.ctx, "entry-1").
		Return([]domain.LedgerLine{{AccountCode: "4111", DebitAmount: dec("119.00")}, {AccountCode: "707", CreditAmount: dec("119.00")}}, nil).Once()
	s.mockLedgerRepo.On("SaveReversal", s.ctx, mock.Anything, mock.Anything, "entry-1").
		Return(apperrors.NewAppError(409, "entry entry-1 is no longer posted", apperrors.ErrConflict)).Once()

	_, _, err := s.service.ReverseEntry(s.ctx, "comp-1", "entry-1", "race", "user-admin")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LedgerServiceTestSuite) TestGetEntryByID_WrongCompanyLooksMissing() {
	original := postedEntry()
	s.mockLedgerRepo.On("FindEntryByID", s.ctx, "entry-1").Return(original, nil).Once()

	entry, err := s.service.GetEntryByID(s.ctx, "other-comp", "entry-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(entry)
}
