package invariant

import (
	"errors"
	"fmt"
	"sort"

	hybrid "github.com/goliatone/go-hybrid"
)

// Rule is a named boolean expression over hybrid.Stats.Map() variables:
// size, capacity, inline_capacity, inline and mode.
type Rule struct {
	Name string
	Expr string
}

// DefaultRules are the shape invariants every vector must satisfy between
// operations. The expressions are valid in the expr, CEL and JS engines.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "size_within_capacity", Expr: "size <= capacity"},
		{Name: "inline_capacity_fixed", Expr: "!inline || capacity == inline_capacity"},
		{Name: "mode_matches_size", Expr: "inline == (size <= inline_capacity)"},
		{Name: "heap_not_below_inline", Expr: "inline || capacity >= inline_capacity * 2"},
	}
}

// Violation reports a rule that evaluated to false.
type Violation struct {
	Rule  string
	Expr  string
	Stats hybrid.Stats
}

func (v *Violation) Error() string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("invariant: rule %s violated: %s with size=%d capacity=%d inline_capacity=%d mode=%s",
		v.Rule, v.Expr, v.Stats.Size, v.Stats.Capacity, v.Stats.InlineCapacity, v.Stats.Mode)
}

// CheckerOption configures a Checker.
type CheckerOption func(*checkerConfig)

type checkerConfig struct {
	evaluator Evaluator
	rules     []Rule
}

// WithEvaluator selects the expression engine. The default is expr.
func WithEvaluator(evaluator Evaluator) CheckerOption {
	return func(cfg *checkerConfig) {
		if evaluator != nil {
			cfg.evaluator = evaluator
		}
	}
}

// WithRules replaces the default rule set.
func WithRules(rules ...Rule) CheckerOption {
	return func(cfg *checkerConfig) {
		cfg.rules = append([]Rule(nil), rules...)
	}
}

// WithRule adds a rule to the configured set.
func WithRule(name, expr string) CheckerOption {
	return func(cfg *checkerConfig) {
		cfg.rules = append(cfg.rules, Rule{Name: name, Expr: expr})
	}
}

type compiledRule struct {
	Rule
	program CompiledRule
}

// Checker evaluates a fixed set of compiled rules against vector stats.
type Checker struct {
	engine string
	rules  []compiledRule
}

// NewChecker compiles the configured rules up front so a malformed rule is
// reported at construction.
func NewChecker(opts ...CheckerOption) (*Checker, error) {
	cfg := checkerConfig{rules: DefaultRules()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.evaluator == nil {
		cfg.evaluator = NewExprEvaluator()
	}
	engine := engineName(cfg.evaluator)

	seen := map[string]bool{}
	rules := make([]compiledRule, 0, len(cfg.rules))
	for _, rule := range cfg.rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("invariant: rule name must not be empty")
		}
		if seen[rule.Name] {
			return nil, fmt.Errorf("invariant: rule %q already registered", rule.Name)
		}
		seen[rule.Name] = true
		program, err := cfg.evaluator.Compile(rule.Expr)
		if err != nil {
			return nil, wrapEvaluationError(engine, rule.Expr, rule.Name, err)
		}
		rules = append(rules, compiledRule{Rule: rule, program: program})
	}
	return &Checker{engine: engine, rules: rules}, nil
}

// Rules returns the rule names in evaluation order.
func (c *Checker) Rules() []string {
	names := make([]string, 0, len(c.rules))
	for _, rule := range c.rules {
		names = append(names, rule.Name)
	}
	return names
}

// Check evaluates every rule against stats. Violations and evaluation
// failures are joined into the returned error.
func (c *Checker) Check(stats hybrid.Stats) error {
	snapshot := stats.Map()
	var errs []error
	for _, rule := range c.rules {
		result, err := rule.program.Evaluate(RuleContext{Snapshot: snapshot, Rule: rule.Name})
		if err != nil {
			errs = append(errs, wrapEvaluationError(c.engine, rule.Expr, rule.Name, err))
			continue
		}
		ok, isBool := result.(bool)
		if !isBool {
			errs = append(errs, wrapEvaluationError(c.engine, rule.Expr, rule.Name,
				fmt.Errorf("rule returned %T, want bool", result)))
			continue
		}
		if !ok {
			errs = append(errs, &Violation{Rule: rule.Name, Expr: rule.Expr, Stats: stats})
		}
	}
	return errors.Join(errs...)
}

// Violations extracts the rule violations from an error returned by Check,
// sorted by rule name.
func Violations(err error) []*Violation {
	var out []*Violation
	collect(err, &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Rule < out[j].Rule })
	return out
}

func collect(err error, out *[]*Violation) {
	if err == nil {
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			collect(inner, out)
		}
		return
	}
	var violation *Violation
	if errors.As(err, &violation) {
		*out = append(*out, violation)
	}
}

// Observe returns an observer that checks the post-transition stats of every
// event and passes failures to report.
func Observe(checker *Checker, report func(hybrid.TransitionEvent, error)) hybrid.Observer {
	return hybrid.ObserverFunc(func(event hybrid.TransitionEvent) {
		if checker == nil || report == nil {
			return
		}
		if err := checker.Check(event.Stats); err != nil {
			report(event, err)
		}
	})
}

func engineName(e Evaluator) string {
	switch e.(type) {
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	case *jsEvaluator:
		return "js"
	default:
		return "custom"
	}
}
