package sqlexec

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/askdb/askdb/internal/fault"
	"github.com/askdb/askdb/internal/validate"
)

// Executor runs approved statements on a *sql.DB. The pool provides
// the required mutual exclusion for concurrent requests; sizing comes
// from configuration.
type Executor struct {
	db      *sql.DB
	maxRows int
	timeout time.Duration
}

func NewExecutor(db *sql.DB, maxRows int, timeout time.Duration) *Executor {
	return &Executor{db: db, maxRows: maxRows, timeout: timeout}
}

// Execute runs the verdict's normalized statement under the configured
// row cap and statement timeout. It never re-validates, but a verdict
// that was not allowed is a programming error, not runtime data, and
// fails loudly.
func (e *Executor) Execute(ctx context.Context, verdict validate.Verdict) (Result, error) {
	if !verdict.Allowed {
		panic("sqlexec: Execute called with a denied verdict")
	}

	sqlText := verdict.NormalizedSQL
	if e.maxRows > 0 {
		sqlText = fmt.Sprintf("SELECT * FROM (%s) AS q LIMIT %d", sqlText, e.maxRows)
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := e.db.QueryContext(ctx, sqlText)
	if err != nil {
		return Result{}, executionFault(err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return Result{}, executionFault(err)
	}
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return Result{}, executionFault(err)
	}
	dbTypes := make([]string, len(columnTypes))
	for i, columnType := range columnTypes {
		dbTypes[i] = columnType.DatabaseTypeName()
	}

	resultRows := make([]Row, 0)
	for rows.Next() {
		if e.maxRows > 0 && len(resultRows) >= e.maxRows {
			break
		}
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return Result{}, executionFault(err)
		}
		row, err := SerializeRow(columns, dbTypes, values)
		if err != nil {
			return Result{}, err
		}
		resultRows = append(resultRows, row)
	}
	if err := rows.Err(); err != nil {
		return Result{}, executionFault(err)
	}

	return Result{
		Columns:  columns,
		Rows:     resultRows,
		RowCount: len(resultRows),
		Duration: time.Since(start),
	}, nil
}

// executionFault carries the driver diagnostic to the caller. The
// message never includes the DSN or credentials; drivers do not echo
// them in query errors.
func executionFault(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fault.Wrap(fault.Execution, err, "query timed out")
	}
	return fault.Wrap(fault.Execution, err, "query failed: %v", err)
}
