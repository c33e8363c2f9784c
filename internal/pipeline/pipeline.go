// Package pipeline sequences one request through the translation
// lifecycle: prompt building, generation, validation, execution, and
// serialization, with failure short-circuits at every stage.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/askdb/askdb/internal/fault"
	"github.com/askdb/askdb/internal/genai"
	"github.com/askdb/askdb/internal/observability"
	"github.com/askdb/askdb/internal/prompt"
	"github.com/askdb/askdb/internal/schema"
	"github.com/askdb/askdb/internal/sqlexec"
	"github.com/askdb/askdb/internal/validate"
)

// Stage names the orchestrator's states. Transitions are strictly
// sequential; a failure at any stage skips the rest.
type Stage string

const (
	StageReceived   Stage = "received"
	StagePrompted   Stage = "prompted"
	StageGenerated  Stage = "generated"
	StageValidated  Stage = "validated"
	StageExecuted   Stage = "executed"
	StageSerialized Stage = "serialized"
	StageCompleted  Stage = "completed"
)

// Executor abstracts statement execution; sqlexec.Executor is the real
// implementation, tests substitute fakes that count calls.
type Executor interface {
	Execute(ctx context.Context, verdict validate.Verdict) (sqlexec.Result, error)
}

// Outcome is the single result of one pipeline run. Err is nil iff
// Stage is StageCompleted.
type Outcome struct {
	NaturalQuery string
	GeneratedSQL string
	Result       sqlexec.Result
	Timestamp    time.Time
	Stage        Stage
	Err          error
}

func (o Outcome) Success() bool { return o.Err == nil }

type Config struct {
	// MaxAttempts bounds generation and execution I/O attempts; it is
	// never applied to validation verdicts.
	MaxAttempts int
	// TablePrefix is passed through to validation/normalization.
	TablePrefix string
}

type Service struct {
	schema    *schema.Descriptor
	examples  []prompt.Example
	generator genai.Generator
	executor  Executor
	logger    *slog.Logger
	cfg       Config
	now       func() time.Time
}

func New(desc *schema.Descriptor, examples []prompt.Example, generator genai.Generator, executor Executor, logger *slog.Logger, cfg Config) *Service {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		schema:    desc,
		examples:  examples,
		generator: generator,
		executor:  executor,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Process runs one question through the full lifecycle and always
// returns exactly one Outcome.
func (s *Service) Process(ctx context.Context, question string) Outcome {
	question = strings.TrimSpace(question)
	if question == "" {
		return s.fail(ctx, question, StageReceived, fault.New(fault.Internal, "question must not be empty"))
	}

	promptText := prompt.Build(s.schema, s.examples, question)

	rawText, err := s.generate(ctx, promptText)
	if err != nil {
		return s.fail(ctx, question, StageGenerated, err)
	}

	verdict := validate.Validate(rawText, s.schema, validate.Options{TablePrefix: s.cfg.TablePrefix})
	if !verdict.Allowed {
		observability.ObserveValidationDenial(string(verdict.Kind))
		s.logger.WarnContext(ctx, "statement_denied",
			slog.String("kind", string(verdict.Kind)),
			slog.String("reason", verdict.Reason),
		)
		return s.fail(ctx, question, StageValidated, verdict.Err())
	}
	s.logger.DebugContext(ctx, "statement_validated", slog.String("sql", verdict.NormalizedSQL))

	result, err := s.execute(ctx, verdict)
	if err != nil {
		stage := StageExecuted
		if fault.KindOf(err) == fault.Serialization {
			stage = StageSerialized
		}
		outcome := s.fail(ctx, question, stage, err)
		outcome.GeneratedSQL = verdict.NormalizedSQL
		return outcome
	}

	observability.ObservePipelineOutcome(string(StageCompleted))
	observability.ObserveResultRows(result.RowCount)
	s.logger.InfoContext(ctx, "query_completed",
		slog.String("sql", verdict.NormalizedSQL),
		slog.Int("rows", result.RowCount),
		slog.String("duration", result.Duration.String()),
	)
	return Outcome{
		NaturalQuery: question,
		GeneratedSQL: verdict.NormalizedSQL,
		Result:       result,
		Timestamp:    s.now(),
		Stage:        StageCompleted,
	}
}

func (s *Service) generate(ctx context.Context, promptText string) (string, error) {
	var rawText string
	err := s.withRetry(ctx, func() error {
		start := time.Now()
		text, err := s.generator.Generate(ctx, promptText)
		observability.ObserveGenerationDuration(time.Since(start))
		if err != nil {
			return err
		}
		rawText = text
		return nil
	})
	return rawText, err
}

func (s *Service) execute(ctx context.Context, verdict validate.Verdict) (sqlexec.Result, error) {
	var result sqlexec.Result
	err := s.withRetry(ctx, func() error {
		start := time.Now()
		res, err := s.executor.Execute(ctx, verdict)
		observability.ObserveExecutionDuration(time.Since(start))
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	return result, err
}

// withRetry re-runs fn up to MaxAttempts for retryable I/O kinds.
// Anything else fails on the first attempt.
func (s *Service) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !fault.Retryable(fault.KindOf(err)) || ctx.Err() != nil {
			return err
		}
		if attempt < s.cfg.MaxAttempts {
			s.logger.WarnContext(ctx, "stage_retry",
				slog.Int("attempt", attempt),
				slog.Any("error", err),
			)
		}
	}
	return err
}

// fail records the failure against the stage that was being attempted
// and produces the terminal Outcome.
func (s *Service) fail(ctx context.Context, question string, reached Stage, err error) Outcome {
	kind := fault.KindOf(err)
	observability.ObservePipelineOutcome("failed")
	observability.ObservePipelineFailure(string(reached), string(kind))
	s.logger.ErrorContext(ctx, "query_failed",
		slog.String("stage", string(reached)),
		slog.String("kind", string(kind)),
		slog.Any("error", err),
	)
	return Outcome{
		NaturalQuery: question,
		Timestamp:    s.now(),
		Stage:        reached,
		Err:          err,
	}
}
