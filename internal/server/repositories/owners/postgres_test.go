package owners

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const nextRevisionQuery = `(?s)^INSERT\s+INTO\s+owners\s*\(id,\s*revision\)\s*VALUES\s*\(\$1,\s*1\)\s*ON\s+CONFLICT\s*\(id\)\s*DO\s+UPDATE\s+SET\s+revision\s*=\s*owners\.revision\s*\+\s*1\s*RETURNING\s+revision\s*$`

func TestNextRevision_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(nextRevisionQuery).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"revision"}).AddRow(int64(4)))

	got, err := repo.NextRevision(context.Background(), "alice")
	if err != nil {
		t.Fatalf("NextRevision error: %v", err)
	}
	if got != 4 {
		t.Fatalf("revision = %d, want 4", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestNextRevision_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(nextRevisionQuery).
		WithArgs("alice").
		WillReturnError(errors.New("db down"))

	_, err := repo.NextRevision(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
