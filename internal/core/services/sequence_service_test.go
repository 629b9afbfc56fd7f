package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/contazen/erp_ledger_core/internal/apperrors"
	"github.com/contazen/erp_ledger_core/internal/core/domain"
	portsrepo "github.com/contazen/erp_ledger_core/internal/core/ports/repositories"
	portssvc "github.com/contazen/erp_ledger_core/internal/core/ports/services"
	"github.com/contazen/erp_ledger_core/internal/core/services"
	"github.com/contazen/erp_ledger_core/internal/dto"
)

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

// Ensure MockSequenceRepository implements portsrepo.SequenceRepositoryFacade
var _ portsrepo.SequenceRepositoryFacade = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) AllocateNextNumber(ctx context.Context, companyID, series string) (*domain.SequenceCounter, int64, error) {
	args := m.Called(ctx, companyID, series)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.SequenceCounter), args.Get(1).(int64), args.Error(2)
}

func (m *MockSequenceRepository) SaveCounter(ctx context.Context, counter domain.SequenceCounter) error {
	args := m.Called(ctx, counter)
	return args.Error(0)
}

// --- Test Suite ---
type SequenceServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSequenceRepository
	service  portssvc.SequenceSvcFacade
	ctx      context.Context
}

func (s *SequenceServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockSequenceRepository)
	s.service = services.NewSequenceService(s.mockRepo)
	s.ctx = context.Background()
}

func TestSequenceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SequenceServiceTestSuite))
}

func (s *SequenceServiceTestSuite) TestGetNextNumber_FormatsAllocatedNumber() {
	counter := &domain.SequenceCounter{
		CompanyID:  "comp-1",
		Series:     "FCT",
		Prefix:     "CZ",
		Suffix:     "X",
		Year:       2026,
		LastNumber: 7,
		NextNumber: 8,
	}
	s.mockRepo.On("AllocateNextNumber", s.ctx, "comp-1", "FCT").Return(counter, int64(7), nil).Once()

	result, err := s.service.GetNextNumber(s.ctx, "comp-1", "FCT")

	s.Require().NoError(err)
	s.Equal("CZFCT7X/2026", result.FormattedNumber)
	s.Equal(int64(7), result.NextNumber)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *SequenceServiceTestSuite) TestGetNextNumber_RequiresCompanyAndSeries() {
	_, err := s.service.GetNextNumber(s.ctx, "", "FCT")
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.GetNextNumber(s.ctx, "comp-1", "")
	s.ErrorIs(err, apperrors.ErrValidation)

	s.mockRepo.AssertNotCalled(s.T(), "AllocateNextNumber", mock.Anything, mock.Anything, mock.Anything)
}

func (s *SequenceServiceTestSuite) TestGetNextNumber_PassesThroughRepositoryErrors() {
	s.mockRepo.On("AllocateNextNumber", s.ctx, "comp-1", "FCT").
		Return(nil, int64(0), apperrors.ErrNotFound).Once()
	_, err := s.service.GetNextNumber(s.ctx, "comp-1", "FCT")
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.mockRepo.On("AllocateNextNumber", s.ctx, "comp-1", "FCT").
		Return(nil, int64(0), apperrors.ErrConcurrencyTimeout).Once()
	_, err = s.service.GetNextNumber(s.ctx, "comp-1", "FCT")
	s.ErrorIs(err, apperrors.ErrConcurrencyTimeout)
}

func (s *SequenceServiceTestSuite) TestCreateSeries_DefaultsStartAndYear() {
	var saved domain.SequenceCounter
	s.mockRepo.On("SaveCounter", s.ctx, mock.AnythingOfType("domain.SequenceCounter")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.SequenceCounter) }).
		Return(nil).Once()

	err := s.service.CreateSeries(s.ctx, dto.CreateSequenceRequest{CompanyID: "comp-1", Series: "CHT"})

	s.Require().NoError(err)
	s.Equal(int64(0), saved.LastNumber)
	s.Equal(int64(1), saved.NextNumber)
	s.Equal(time.Now().UTC().Year(), saved.Year)
	s.NotEmpty(saved.SequenceID)
}

func (s *SequenceServiceTestSuite) TestCreateSeries_DuplicatePassesThrough() {
	s.mockRepo.On("SaveCounter", s.ctx, mock.Anything).
		Return(apperrors.NewAppError(409, "sequence comp-1/FCT/2026 already exists", apperrors.ErrDuplicate)).Once()

	err := s.service.CreateSeries(s.ctx, dto.CreateSequenceRequest{CompanyID: "comp-1", Series: "FCT"})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

// fakeSequenceRepo emulates the row-lock semantics of the Postgres
// repository: one mutex per counter, allocation reads and advances under it.
type fakeSequenceRepo struct {
	mu      sync.Mutex
	counter domain.SequenceCounter
}

var _ portsrepo.SequenceRepositoryFacade = (*fakeSequenceRepo)(nil)

func (f *fakeSequenceRepo) AllocateNextNumber(ctx context.Context, companyID, series string) (*domain.SequenceCounter, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counter.CompanyID != companyID || f.counter.Series != series {
		return nil, 0, apperrors.ErrNotFound
	}
	allocated := f.counter.NextNumber
	f.counter.LastNumber = allocated
	f.counter.NextNumber = allocated + 1
	snapshot := f.counter
	return &snapshot, allocated, nil
}

func (f *fakeSequenceRepo) SaveCounter(ctx context.Context, counter domain.SequenceCounter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counter = counter
	return nil
}

// Fifty concurrent allocations must produce exactly the numbers 1..50, each
// once, with no gaps.
func TestSequenceService_ConcurrentAllocationsAreGapless(t *testing.T) {
	repo := &fakeSequenceRepo{
		counter: domain.SequenceCounter{
			SequenceID: "seq-1",
			CompanyID:  "comp-1",
			Series:     "FCT",
			Year:       2026,
			LastNumber: 0,
			NextNumber: 1,
		},
	}
	svc := services.NewSequenceService(repo)

	const workers = 50
	results := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.GetNextNumber(context.Background(), "comp-1", "FCT")
			if err != nil {
				t.Error(err)
				return
			}
			results <- res.NextNumber
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool, workers)
	for n := range results {
		if seen[n] {
			t.Fatalf("number %d was allocated twice", n)
		}
		seen[n] = true
	}
	if len(seen) != workers {
		t.Fatalf("expected %d distinct numbers, got %d", workers, len(seen))
	}
	for n := int64(1); n <= workers; n++ {
		if !seen[n] {
			t.Fatalf("gap in sequence: %d missing", n)
		}
	}
}
