package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"bistrobot/accounts-service/internal/app/accounts/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// APIKeyRepositoryTestSuite тестовый suite для PostgreSQL repository
type APIKeyRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  APIKeyRepository
	sqlDB *sql.DB
}

func TestAPIKeyRepositorySuite(t *testing.T) {
	suite.Run(t, new(APIKeyRepositoryTestSuite))
}

func (s *APIKeyRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewAPIKeyRepository(s.db)
}

func (s *APIKeyRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== GetByPrefix Tests =====================

func (s *APIKeyRepositoryTestSuite) TestGetByPrefix_Success() {
	ctx := context.Background()
	keyID := uuid.New()
	createdAt := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "prefix", "secret_hash", "created_at", "last_used_at"}).
		AddRow(keyID, "yelp-connector", "bb_12345678", "$2a$10$hash", createdAt, nil)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "api_keys" WHERE prefix = $1`)).
		WithArgs("bb_12345678", 1).
		WillReturnRows(rows)

	key, err := s.repo.GetByPrefix(ctx, "bb_12345678")

	s.NoError(err)
	s.NotNil(key)
	s.Equal(keyID, key.ID)
	s.Equal("yelp-connector", key.Name)
	s.Equal("bb_12345678", key.Prefix)
	s.Nil(key.LastUsedAt)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APIKeyRepositoryTestSuite) TestGetByPrefix_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "api_keys" WHERE prefix = $1`)).
		WithArgs("bb_00000000", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	key, err := s.repo.GetByPrefix(ctx, "bb_00000000")

	s.ErrorIs(err, ErrAPIKeyNotFound)
	s.Nil(key)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APIKeyRepositoryTestSuite) TestGetByPrefix_DBError() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "api_keys" WHERE prefix = $1`)).
		WithArgs("bb_12345678", 1).
		WillReturnError(sql.ErrConnDone)

	key, err := s.repo.GetByPrefix(ctx, "bb_12345678")

	s.Error(err)
	s.NotErrorIs(err, ErrAPIKeyNotFound)
	s.Nil(key)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Create Tests =====================

func (s *APIKeyRepositoryTestSuite) TestCreate_Success() {
	ctx := context.Background()
	key := &entity.APIKey{
		ID:         uuid.New(),
		Name:       "google-connector",
		Prefix:     "bb_87654321",
		SecretHash: "$2a$10$hash",
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "api_keys"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.Create(ctx, key)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APIKeyRepositoryTestSuite) TestCreate_DBError() {
	ctx := context.Background()
	key := &entity.APIKey{
		ID:         uuid.New(),
		Name:       "google-connector",
		Prefix:     "bb_87654321",
		SecretHash: "$2a$10$hash",
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "api_keys"`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	err := s.repo.Create(ctx, key)

	s.Error(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetAll Tests =====================

func (s *APIKeyRepositoryTestSuite) TestGetAll_Success() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "name", "prefix", "secret_hash", "created_at", "last_used_at"}).
		AddRow(uuid.New(), "yelp-connector", "bb_11111111", "$2a$10$h1", time.Now(), nil).
		AddRow(uuid.New(), "google-connector", "bb_22222222", "$2a$10$h2", time.Now().Add(-time.Hour), nil)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "api_keys" ORDER BY created_at DESC`)).
		WillReturnRows(rows)

	keys, err := s.repo.GetAll(ctx)

	s.NoError(err)
	s.Len(keys, 2)
	s.Equal("yelp-connector", keys[0].Name)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Delete Tests =====================

func (s *APIKeyRepositoryTestSuite) TestDelete_Success() {
	ctx := context.Background()
	keyID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "api_keys" WHERE id = $1`)).
		WithArgs(keyID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.Delete(ctx, keyID)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APIKeyRepositoryTestSuite) TestDelete_NotFound() {
	ctx := context.Background()
	keyID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "api_keys" WHERE id = $1`)).
		WithArgs(keyID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.Delete(ctx, keyID)

	s.ErrorIs(err, ErrAPIKeyNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== TouchLastUsed Tests =====================

func (s *APIKeyRepositoryTestSuite) TestTouchLastUsed_Success() {
	ctx := context.Background()
	keyID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "api_keys" SET "last_used_at"=$1 WHERE id = $2`)).
		WithArgs(sqlmock.AnyArg(), keyID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.TouchLastUsed(ctx, keyID)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *APIKeyRepositoryTestSuite) TestTouchLastUsed_NotFound() {
	ctx := context.Background()
	keyID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "api_keys" SET "last_used_at"=$1 WHERE id = $2`)).
		WithArgs(sqlmock.AnyArg(), keyID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.TouchLastUsed(ctx, keyID)

	s.ErrorIs(err, ErrAPIKeyNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}
