package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/askdb/askdb/internal/fault"
	"github.com/askdb/askdb/internal/prompt"
	"github.com/askdb/askdb/internal/schema"
	"github.com/askdb/askdb/internal/sqlexec"
	"github.com/askdb/askdb/internal/validate"
)

type fakeGenerator struct {
	outputs []string
	errs    []error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, promptText string) (string, error) {
	idx := f.calls
	f.calls++
	f.prompts = append(f.prompts, promptText)
	if idx < len(f.errs) && f.errs[idx] != nil {
		return "", f.errs[idx]
	}
	if idx < len(f.outputs) {
		return f.outputs[idx], nil
	}
	return f.outputs[len(f.outputs)-1], nil
}

type fakeExecutor struct {
	result   sqlexec.Result
	errs     []error
	calls    int
	verdicts []validate.Verdict
}

func (f *fakeExecutor) Execute(_ context.Context, verdict validate.Verdict) (sqlexec.Result, error) {
	idx := f.calls
	f.calls++
	f.verdicts = append(f.verdicts, verdict)
	if idx < len(f.errs) && f.errs[idx] != nil {
		return sqlexec.Result{}, f.errs[idx]
	}
	return f.result, nil
}

func newService(gen *fakeGenerator, exec *fakeExecutor, cfg Config) *Service {
	return New(schema.SkillsProfile(), prompt.DefaultExamples(), gen, exec, nil, cfg)
}

func TestProcessHappyPath(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"```sql\nSELECT email FROM users;\n```"}}
	exec := &fakeExecutor{result: sqlexec.Result{
		Columns:  []string{"email"},
		Rows:     []sqlexec.Row{{"email": sqlexec.Text("a@example.com")}},
		RowCount: 1,
	}}
	service := newService(gen, exec, Config{MaxAttempts: 2, TablePrefix: "SKILLS"})

	outcome := service.Process(context.Background(), "  list all emails  ")
	if !outcome.Success() {
		t.Fatalf("Process failed: %v", outcome.Err)
	}
	if outcome.Stage != StageCompleted {
		t.Fatalf("stage = %s", outcome.Stage)
	}
	if outcome.NaturalQuery != "list all emails" {
		t.Fatalf("question = %q", outcome.NaturalQuery)
	}
	if outcome.GeneratedSQL != "SELECT email FROM SKILLS.users" {
		t.Fatalf("generated sql = %q", outcome.GeneratedSQL)
	}
	if outcome.Result.RowCount != 1 {
		t.Fatalf("row count = %d", outcome.Result.RowCount)
	}
	if outcome.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}
	if exec.calls != 1 {
		t.Fatalf("executor calls = %d", exec.calls)
	}
	if exec.verdicts[0].NormalizedSQL != "SELECT email FROM SKILLS.users" {
		t.Fatalf("executor got %q", exec.verdicts[0].NormalizedSQL)
	}
}

func TestProcessRejectsEmptyQuestion(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"SELECT 1"}}
	exec := &fakeExecutor{}
	service := newService(gen, exec, Config{MaxAttempts: 1})

	outcome := service.Process(context.Background(), "   ")
	if outcome.Success() {
		t.Fatal("expected failure")
	}
	if outcome.Stage != StageReceived {
		t.Fatalf("stage = %s", outcome.Stage)
	}
	if gen.calls != 0 || exec.calls != 0 {
		t.Fatalf("generator/executor called: %d/%d", gen.calls, exec.calls)
	}
}

func TestProcessDenialShortCircuitsExecution(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"DROP TABLE users; SELECT 1"}}
	exec := &fakeExecutor{}
	service := newService(gen, exec, Config{MaxAttempts: 3, TablePrefix: "SKILLS"})

	outcome := service.Process(context.Background(), "remove everything")
	if outcome.Success() {
		t.Fatal("expected denial")
	}
	if outcome.Stage != StageValidated {
		t.Fatalf("stage = %s", outcome.Stage)
	}
	if fault.KindOf(outcome.Err) != fault.WriteStatement {
		t.Fatalf("kind = %s", fault.KindOf(outcome.Err))
	}
	if exec.calls != 0 {
		t.Fatalf("executor called %d times on a denied statement", exec.calls)
	}
	if gen.calls != 1 {
		t.Fatalf("generation retried a validation denial: %d calls", gen.calls)
	}
	if outcome.GeneratedSQL != "" {
		t.Fatalf("denied outcome carries sql %q", outcome.GeneratedSQL)
	}
}

func TestProcessRetriesGenerationOnce(t *testing.T) {
	gen := &fakeGenerator{
		errs:    []error{fault.New(fault.Generation, "inference endpoint unreachable")},
		outputs: []string{"", "SELECT email FROM users"},
	}
	exec := &fakeExecutor{result: sqlexec.Result{RowCount: 0, Rows: []sqlexec.Row{}}}
	service := newService(gen, exec, Config{MaxAttempts: 2, TablePrefix: "SKILLS"})

	outcome := service.Process(context.Background(), "list emails")
	if !outcome.Success() {
		t.Fatalf("Process failed after retry: %v", outcome.Err)
	}
	if gen.calls != 2 {
		t.Fatalf("generator calls = %d, want 2", gen.calls)
	}
}

func TestProcessGenerationFailureExhaustsAttempts(t *testing.T) {
	genErr := fault.New(fault.Generation, "inference endpoint unreachable")
	gen := &fakeGenerator{errs: []error{genErr, genErr}, outputs: []string{""}}
	exec := &fakeExecutor{}
	service := newService(gen, exec, Config{MaxAttempts: 2})

	outcome := service.Process(context.Background(), "list emails")
	if outcome.Success() {
		t.Fatal("expected failure")
	}
	if outcome.Stage != StageGenerated {
		t.Fatalf("stage = %s", outcome.Stage)
	}
	if gen.calls != 2 {
		t.Fatalf("generator calls = %d", gen.calls)
	}
	if exec.calls != 0 {
		t.Fatal("executor reached without sql")
	}
}

func TestProcessExecutionFailureKeepsGeneratedSQL(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"SELECT email FROM users"}}
	execErr := fault.Wrap(fault.Execution, errors.New("connection reset"), "query failed")
	exec := &fakeExecutor{errs: []error{execErr, execErr}}
	service := newService(gen, exec, Config{MaxAttempts: 2, TablePrefix: "SKILLS"})

	outcome := service.Process(context.Background(), "list emails")
	if outcome.Success() {
		t.Fatal("expected failure")
	}
	if outcome.Stage != StageExecuted {
		t.Fatalf("stage = %s", outcome.Stage)
	}
	if exec.calls != 2 {
		t.Fatalf("executor calls = %d, want retry", exec.calls)
	}
	if outcome.GeneratedSQL != "SELECT email FROM SKILLS.users" {
		t.Fatalf("generated sql = %q", outcome.GeneratedSQL)
	}
}

func TestProcessSerializationFailureIsNotRetried(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"SELECT email FROM users"}}
	exec := &fakeExecutor{errs: []error{fault.New(fault.Serialization, "column \"email\" has unsupported value")}}
	service := newService(gen, exec, Config{MaxAttempts: 3, TablePrefix: "SKILLS"})

	outcome := service.Process(context.Background(), "list emails")
	if outcome.Stage != StageSerialized {
		t.Fatalf("stage = %s", outcome.Stage)
	}
	if exec.calls != 1 {
		t.Fatalf("executor calls = %d, serialization must not retry", exec.calls)
	}
}

func TestProcessPromptContainsQuestion(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"SELECT email FROM users"}}
	exec := &fakeExecutor{result: sqlexec.Result{Rows: []sqlexec.Row{}}}
	service := newService(gen, exec, Config{MaxAttempts: 1})

	_ = service.Process(context.Background(), "who changed roles last month?")
	if len(gen.prompts) != 1 {
		t.Fatalf("prompts = %d", len(gen.prompts))
	}
	want := prompt.Build(schema.SkillsProfile(), prompt.DefaultExamples(), "who changed roles last month?")
	if gen.prompts[0] != want {
		t.Fatal("prompt drifted from the deterministic builder output")
	}
}

func TestOutcomeTimestampUsesClock(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"SELECT email FROM users"}}
	exec := &fakeExecutor{result: sqlexec.Result{Rows: []sqlexec.Row{}}}
	service := newService(gen, exec, Config{MaxAttempts: 1})
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	outcome := service.Process(context.Background(), "list emails")
	if !outcome.Timestamp.Equal(fixed) {
		t.Fatalf("timestamp = %v", outcome.Timestamp)
	}
}
