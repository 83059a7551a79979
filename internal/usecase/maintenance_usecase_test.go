package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/usecase"
)

func legacyStamps() []domain.Stamp {
	return []domain.Stamp{
		{ID: "a", City: "LONDON", Country: "England"},
		{ID: "b", City: "AMSTERDAM", Country: "HOLLAND", CountryRaw: "Holland"},
		{ID: "c", City: "PARIS", Country: "FRANCE"},
		{ID: "d", City: "MANCHESTER", Country: "UNITED KINGDOM"},
		{ID: "e", City: "NOWHERE", Country: ""},
	}
}

func TestMaintenanceUseCase_NormalizeCountries_DryRun(t *testing.T) {
	ctx := context.Background()
	stamps := &MockStampRepository{}
	cache := &MockCacheRepository{}
	stream := &MockStreamRepository{}
	stamps.On("List", ctx).Return(legacyStamps(), nil).Once()

	uc := usecase.NewMaintenanceUseCase(stamps, cache, stream, zap.NewNop())
	report, err := uc.NormalizeCountries(ctx, true)

	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 5, report.Scanned)
	assert.Equal(t, 3, report.Changed)
	require.Len(t, report.Changes, 3)
	assert.Equal(t, "a", report.Changes[0].StampID)
	assert.Equal(t, "England", report.Changes[0].From)
	assert.Equal(t, "UK", report.Changes[0].To)

	stamps.AssertNotCalled(t, "UpdateCountries", mock.Anything, mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "InvalidateLedger", mock.Anything)
	stream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
}

func TestMaintenanceUseCase_NormalizeCountries_Apply(t *testing.T) {
	ctx := context.Background()
	stamps := &MockStampRepository{}
	cache := &MockCacheRepository{}
	stream := &MockStreamRepository{}
	stamps.On("List", ctx).Return(legacyStamps(), nil).Once()
	stamps.On("UpdateCountries", ctx, "NETHERLANDS", []string{"b"}).Return(int64(1), nil).Once()
	stamps.On("UpdateCountries", ctx, "UK", []string{"a", "d"}).Return(int64(2), nil).Once()
	cache.On("InvalidateLedger", ctx).Return(nil).Once()
	stream.On("PublishToStream", ctx, domain.StreamStampsChanged, mock.MatchedBy(func(e *domain.StampChangedEvent) bool {
		return e.Action == domain.StampActionUpdated
	})).Return(nil).Times(3)

	uc := usecase.NewMaintenanceUseCase(stamps, cache, stream, zap.NewNop())
	report, err := uc.NormalizeCountries(ctx, false)

	require.NoError(t, err)
	assert.False(t, report.DryRun)
	assert.Equal(t, 3, report.Changed)
	stamps.AssertExpectations(t)
	cache.AssertExpectations(t)
	stream.AssertExpectations(t)
}

func TestMaintenanceUseCase_NormalizeCountries_NothingToDo(t *testing.T) {
	ctx := context.Background()
	stamps := &MockStampRepository{}
	stamps.On("List", ctx).Return([]domain.Stamp{{ID: "x", Country: "FRANCE"}}, nil).Once()

	uc := usecase.NewMaintenanceUseCase(stamps, nil, nil, zap.NewNop())
	report, err := uc.NormalizeCountries(ctx, false)

	require.NoError(t, err)
	assert.Equal(t, 0, report.Changed)
	assert.Empty(t, report.Changes)
}

func TestMaintenanceUseCase_NormalizeCountries_UpdateFails(t *testing.T) {
	ctx := context.Background()
	stamps := &MockStampRepository{}
	stamps.On("List", ctx).Return(legacyStamps(), nil).Once()
	stamps.On("UpdateCountries", ctx, "NETHERLANDS", []string{"b"}).Return(int64(0), errors.New("db down")).Once()

	uc := usecase.NewMaintenanceUseCase(stamps, nil, nil, zap.NewNop())
	_, err := uc.NormalizeCountries(ctx, false)

	assert.Error(t, err)
}
