package sqlexec

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/askdb/askdb/internal/fault"
	"github.com/askdb/askdb/internal/validate"
)

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func assertSQLMock(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}

func allowed(sqlText string) validate.Verdict {
	return validate.Verdict{Allowed: true, NormalizedSQL: sqlText}
}

func TestExecuteWrapsStatementWithRowCap(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM (SELECT email FROM SKILLS.users) AS q LIMIT 3")).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).
			AddRow("a@example.com").
			AddRow("b@example.com"))

	result, err := NewExecutor(db, 3, time.Second).Execute(context.Background(), allowed("SELECT email FROM SKILLS.users"))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.RowCount != 2 || len(result.Rows) != 2 {
		t.Fatalf("RowCount = %d, rows = %d", result.RowCount, len(result.Rows))
	}
	if got := result.Rows[0]["email"].String(); got != "a@example.com" {
		t.Fatalf("first row email = %q", got)
	}
	if len(result.Columns) != 1 || result.Columns[0] != "email" {
		t.Fatalf("Columns = %v", result.Columns)
	}
	assertSQLMock(t, mock)
}

func TestExecuteWithoutRowCapRunsStatementVerbatim(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM SKILLS.users")).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(7)))

	result, err := NewExecutor(db, 0, 0).Execute(context.Background(), allowed("SELECT user_id FROM SKILLS.users"))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := result.Rows[0]["user_id"].String(); got != "7" {
		t.Fatalf("user_id = %q", got)
	}
	assertSQLMock(t, mock)
}

func TestExecuteTruncatesAtRowCap(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).
			AddRow(int64(1)).
			AddRow(int64(2)).
			AddRow(int64(3)))

	result, err := NewExecutor(db, 2, time.Second).Execute(context.Background(), allowed("SELECT user_id FROM SKILLS.users"))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.RowCount != 2 {
		t.Fatalf("RowCount = %d, want 2", result.RowCount)
	}
}

func TestExecuteClassifiesDriverErrors(t *testing.T) {
	db, mock := newSQLMock(t)

	driverErr := errors.New(`relation "skills.salaries" does not exist`)
	mock.ExpectQuery("SELECT").WillReturnError(driverErr)

	_, err := NewExecutor(db, 10, time.Second).Execute(context.Background(), allowed("SELECT salary FROM SKILLS.salaries"))
	if err == nil {
		t.Fatal("expected error")
	}
	if fault.KindOf(err) != fault.Execution {
		t.Fatalf("kind = %s, want %s", fault.KindOf(err), fault.Execution)
	}
	if !errors.Is(err, driverErr) {
		t.Fatal("driver cause not preserved")
	}
	assertSQLMock(t, mock)
}

func TestExecuteClassifiesTimeout(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectQuery("SELECT").WillReturnError(context.DeadlineExceeded)

	_, err := NewExecutor(db, 10, time.Second).Execute(context.Background(), allowed("SELECT user_id FROM SKILLS.users"))
	if fault.KindOf(err) != fault.Execution {
		t.Fatalf("kind = %s", fault.KindOf(err))
	}
	if fault.MessageOf(err) != "query timed out" {
		t.Fatalf("message = %q", fault.MessageOf(err))
	}
}

func TestExecuteSerializesDateColumnsByDatabaseType(t *testing.T) {
	db, mock := newSQLMock(t)

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("approved_at").OfType("DATE", time.Time{}),
	).AddRow(day)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	result, err := NewExecutor(db, 10, time.Second).Execute(context.Background(), allowed("SELECT approved_at FROM SKILLS.approvals"))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	cell := result.Rows[0]["approved_at"]
	if cell.Kind() != KindDate {
		t.Fatalf("kind = %d, want date", cell.Kind())
	}
	if cell.String() != "2025-03-14" {
		t.Fatalf("date = %q", cell.String())
	}
}

func TestExecuteSerializationFaultSurfaces(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"c"}).AddRow(5 * time.Second))

	_, err := NewExecutor(db, 10, time.Second).Execute(context.Background(), allowed("SELECT user_id FROM SKILLS.users"))
	if fault.KindOf(err) != fault.Serialization {
		t.Fatalf("kind = %s, want %s", fault.KindOf(err), fault.Serialization)
	}
}

func TestExecutePanicsOnDeniedVerdict(t *testing.T) {
	db, _ := newSQLMock(t)
	executor := NewExecutor(db, 10, time.Second)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on denied verdict")
		}
	}()
	_, _ = executor.Execute(context.Background(), validate.Verdict{Allowed: false})
}
