package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"bistrobot/worker-service/internal/app/worker/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DispatchJobRepositoryTestSuite тестовый suite для PostgreSQL repository
type DispatchJobRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  DispatchJobRepository
	sqlDB *sql.DB
}

func TestDispatchJobRepositorySuite(t *testing.T) {
	suite.Run(t, new(DispatchJobRepositoryTestSuite))
}

func (s *DispatchJobRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewDispatchJobRepository(s.db)
}

func (s *DispatchJobRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== Upsert Tests =====================

func (s *DispatchJobRepositoryTestSuite) TestUpsert_Success() {
	ctx := context.Background()
	job := &entity.DispatchJob{
		ID:          uuid.New(),
		ReviewID:    "rev-1",
		Platform:    "Yelp",
		ReplyText:   "Thanks for your feedback.",
		ScheduledAt: time.Now().Add(time.Hour),
		Status:      entity.JobStatusPending,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "dispatch_jobs"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.Upsert(ctx, job)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *DispatchJobRepositoryTestSuite) TestUpsert_DBError() {
	ctx := context.Background()
	job := &entity.DispatchJob{
		ID:          uuid.New(),
		ReviewID:    "rev-1",
		ScheduledAt: time.Now().Add(time.Hour),
		Status:      entity.JobStatusPending,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "dispatch_jobs"`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	err := s.repo.Upsert(ctx, job)

	s.Error(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetDue Tests =====================

func (s *DispatchJobRepositoryTestSuite) TestGetDue_ReturnsOnlyDuePending() {
	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "review_id", "platform", "reply_text", "scheduled_at", "status", "attempts", "last_error", "created_at", "updated_at"}).
		AddRow(uuid.New(), "rev-1", "Yelp", "Sorry!", now.Add(-time.Minute), "pending", 0, "", now, now).
		AddRow(uuid.New(), "rev-2", "Google", "Thanks!", now.Add(-time.Hour), "pending", 1, "timeout", now, now)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "dispatch_jobs" WHERE status = $1 AND scheduled_at <= $2 ORDER BY scheduled_at ASC`)).
		WithArgs("pending", now).
		WillReturnRows(rows)

	jobs, err := s.repo.GetDue(ctx, now)

	s.NoError(err)
	s.Len(jobs, 2)
	s.Equal("rev-1", jobs[0].ReviewID)
	s.Equal(entity.JobStatusPending, jobs[0].Status)
	s.Equal(1, jobs[1].Attempts)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *DispatchJobRepositoryTestSuite) TestGetDue_DBError() {
	ctx := context.Background()
	now := time.Now()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "dispatch_jobs"`)).
		WillReturnError(sql.ErrConnDone)

	jobs, err := s.repo.GetDue(ctx, now)

	s.Error(err)
	s.Nil(jobs)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetByReviewID Tests =====================

func (s *DispatchJobRepositoryTestSuite) TestGetByReviewID_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "dispatch_jobs" WHERE review_id = $1`)).
		WithArgs("rev-404", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	job, err := s.repo.GetByReviewID(ctx, "rev-404")

	s.ErrorIs(err, ErrJobNotFound)
	s.Nil(job)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== MarkSent Tests =====================

func (s *DispatchJobRepositoryTestSuite) TestMarkSent_Success() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "dispatch_jobs" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.MarkSent(ctx, "rev-1")

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *DispatchJobRepositoryTestSuite) TestMarkSent_NotFound() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "dispatch_jobs" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.MarkSent(ctx, "rev-404")

	s.ErrorIs(err, ErrJobNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== CancelPending Tests =====================

func (s *DispatchJobRepositoryTestSuite) TestCancelPending_NoPendingJobIsNoop() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "dispatch_jobs" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	// Отсутствие pending задания не считается ошибкой
	err := s.repo.CancelPending(ctx, "rev-1")

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== RecordFailure Tests =====================

func (s *DispatchJobRepositoryTestSuite) TestRecordFailure_Retry() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "dispatch_jobs" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.RecordFailure(ctx, "rev-1", 1, "connection refused", false)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *DispatchJobRepositoryTestSuite) TestRecordFailure_Final() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "dispatch_jobs" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.RecordFailure(ctx, "rev-1", 3, "connection refused", true)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}
