package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/domain/repository"
	"github.com/travel-ledger/internal/pkg/errors"
	"github.com/travel-ledger/internal/repository/postgres/testhelpers"
)

// StampRepositoryTestSuite тестирует StampRepository на реальной базе
type StampRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.StampRepository
	ctx    context.Context
}

func (s *StampRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())
	s.ctx = context.Background()

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.Require().NoError(err, "Failed to apply migrations")

	s.repo = testhelpers.NewStampRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *StampRepositoryTestSuite) SetupTest() {
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func (s *StampRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *StampRepositoryTestSuite) TestCreateAndGet() {
	lat, lng := 52.52, 13.405
	stamp := &domain.Stamp{
		City:       "BERLIN",
		Country:    "GERMANY",
		CountryRaw: "Deutschland",
		Venue:      "TRESOR",
		Category:   domain.CategoryRave,
		Date:       "2024-02-02",
		Lat:        &lat,
		Lng:        &lng,
		Color:      "#22d3ee",
		Points:     30,
	}

	s.Require().NoError(s.repo.Create(s.ctx, stamp))
	s.NotEmpty(stamp.ID)
	s.Require().NotNil(stamp.CreatedAt)

	got, err := s.repo.GetByID(s.ctx, stamp.ID)
	s.Require().NoError(err)
	s.Equal("BERLIN", got.City)
	s.Equal("Deutschland", got.CountryRaw)
	s.Equal("2024-02-02", got.Date)
	s.Require().NotNil(got.Lat)
	s.InDelta(52.52, *got.Lat, 1e-9)
	s.Equal(30, got.Points)
}

func (s *StampRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(s.ctx, uuid.NewString())
	s.ErrorIs(err, errors.ErrStampNotFound)

	_, err = s.repo.GetByID(s.ctx, "not-a-uuid")
	s.ErrorIs(err, errors.ErrStampNotFound)
}

func (s *StampRepositoryTestSuite) TestUpdateDeleteClearImage() {
	stamp := &domain.Stamp{City: "PARIS", Country: "FRANCE", Image: "data:image/png;base64,AAAA"}
	s.Require().NoError(s.repo.Create(s.ctx, stamp))

	stamp.Venue = "REX CLUB"
	s.Require().NoError(s.repo.Update(s.ctx, stamp))

	s.Require().NoError(s.repo.ClearImage(s.ctx, stamp.ID))
	got, err := s.repo.GetByID(s.ctx, stamp.ID)
	s.Require().NoError(err)
	s.Equal("REX CLUB", got.Venue)
	s.Empty(got.Image)
	s.Nil(got.Lat)

	s.Require().NoError(s.repo.Delete(s.ctx, stamp.ID))
	s.ErrorIs(s.repo.Delete(s.ctx, stamp.ID), errors.ErrStampNotFound)
}

func (s *StampRepositoryTestSuite) TestListNewestFirst() {
	db := s.testDB.DB.DB
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	oldID, err := testhelpers.InsertStamp(db, "SKOPJE", "north macedonia", base)
	s.Require().NoError(err)
	newID, err := testhelpers.InsertStamp(db, "PRISTINA", "kosove", base.Add(time.Hour))
	s.Require().NoError(err)

	stamps, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(stamps, 2)
	s.Equal(newID, stamps[0].ID)
	s.Equal(oldID, stamps[1].ID)
}

func (s *StampRepositoryTestSuite) TestUpdateCountries() {
	db := s.testDB.DB.DB
	a, err := testhelpers.InsertStamp(db, "LONDON", "england", time.Now())
	s.Require().NoError(err)
	b, err := testhelpers.InsertStamp(db, "MANCHESTER", "Great Britain", time.Now())
	s.Require().NoError(err)

	affected, err := s.repo.UpdateCountries(s.ctx, "UK", []string{a, b})
	s.Require().NoError(err)
	s.Equal(int64(2), affected)

	got, err := s.repo.GetByID(s.ctx, b)
	s.Require().NoError(err)
	s.Equal("UK", got.Country)
	s.Equal("Great Britain", got.CountryRaw)

	affected, err = s.repo.UpdateCountries(s.ctx, "UK", nil)
	s.NoError(err)
	s.Zero(affected)
}

func TestStampRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(StampRepositoryTestSuite))
}
