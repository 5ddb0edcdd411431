package compliance

import (
	"log/slog"
	"time"

	"infoprom/poaudit/pkg/eventlog"
)

// EngineConfig contains configuration for the compliance engine.
type EngineConfig struct {
	// Patterns is the activity pattern table. Defaults to
	// DefaultPatternConfig when nil.
	Patterns *PatternConfig

	// ValueTolerance is the absolute tolerance for monetary comparisons.
	// Defaults to DefaultValueTolerance when zero or negative.
	ValueTolerance float64

	// Logger receives per-case debug output. Defaults to slog.Default.
	Logger *slog.Logger
}

// Engine evaluates cases against the rule set of their procurement
// category. An Engine holds only immutable configuration and is safe for
// concurrent use across cases.
type Engine struct {
	patterns  *PatternConfig
	tolerance float64
	logger    *slog.Logger
	ruleSets  map[Category]ruleSet
}

// NewEngine creates a compliance engine.
func NewEngine(cfg EngineConfig) *Engine {
	patterns := cfg.Patterns
	if patterns == nil {
		patterns = DefaultPatternConfig()
	}
	tolerance := cfg.ValueTolerance
	if tolerance <= 0 {
		tolerance = DefaultValueTolerance
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		patterns:  patterns,
		tolerance: tolerance,
		logger:    logger.With("component", "compliance.engine"),
		ruleSets: map[Category]ruleSet{
			CategoryThreeWayAfter:  checkThreeWayAfter,
			CategoryThreeWayBefore: checkThreeWayBefore,
			CategoryTwoWay:         checkTwoWay,
			CategoryConsignment:    checkConsignment,
		},
	}
}

// Evaluate applies every rule of the category's rule set to the case and
// returns the verdict with all violations collected. The case is never
// mutated. The only error is an unrecognized category.
func (e *Engine) Evaluate(c *eventlog.Case, category Category) (*Verdict, error) {
	rules, ok := e.ruleSets[category]
	if !ok {
		return nil, &UnknownCategoryError{Category: string(category)}
	}

	view := newCaseView(c, e.patterns, e.tolerance)
	violations := rules(view)

	verdict := &Verdict{
		CaseID:      c.ID,
		Category:    category,
		Compliant:   len(violations) == 0,
		Violations:  violations,
		EvaluatedAt: time.Now().UTC(),
	}

	if !verdict.Compliant {
		e.logger.Debug("case non-compliant",
			"case_id", c.ID,
			"category", category,
			"violations", len(violations))
	}
	return verdict, nil
}

// EvaluateLog evaluates every case of a log against one category and
// returns the verdicts in case order.
func (e *Engine) EvaluateLog(log *eventlog.Log, category Category) ([]*Verdict, error) {
	if !category.Valid() {
		return nil, &UnknownCategoryError{Category: string(category)}
	}

	verdicts := make([]*Verdict, 0, len(log.Cases))
	for _, c := range log.Cases {
		verdict, err := e.Evaluate(c, category)
		if err != nil {
			return nil, err
		}
		verdicts = append(verdicts, verdict)
	}
	return verdicts, nil
}
