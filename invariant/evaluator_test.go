package invariant

import (
	"errors"
	"testing"
)

func TestEvaluatorsShareBindings(t *testing.T) {
	snapshot := map[string]any{"size": int64(3), "capacity": int64(4), "inline": false, "mode": "heap"}
	cases := []struct {
		expr string
		want bool
	}{
		{expr: "size <= capacity", want: true},
		{expr: "inline", want: false},
		{expr: "mode == 'heap' && size * 2 > capacity", want: true},
	}
	for _, factory := range evaluatorFactories {
		evaluator := factory.new(nil)
		for _, tc := range cases {
			got, err := evaluator.Evaluate(RuleContext{Snapshot: snapshot}, tc.expr)
			if err != nil {
				t.Fatalf("%s: %s: %v", factory.name, tc.expr, err)
			}
			if got != tc.want {
				t.Fatalf("%s: %s: expected %v, got %v", factory.name, tc.expr, tc.want, got)
			}
		}
	}
}

func TestEvaluatorsRejectEmptyExpression(t *testing.T) {
	for _, factory := range evaluatorFactories {
		evaluator := factory.new(nil)
		if _, err := evaluator.Evaluate(RuleContext{}, ""); !errors.Is(err, ErrEmptyExpression) {
			t.Fatalf("%s: expected ErrEmptyExpression from Evaluate, got %v", factory.name, err)
		}
		if _, err := evaluator.Compile(""); !errors.Is(err, ErrEmptyExpression) {
			t.Fatalf("%s: expected ErrEmptyExpression from Compile, got %v", factory.name, err)
		}
	}
}

func TestEvaluatorProgramCache(t *testing.T) {
	for _, factory := range evaluatorFactories {
		cache := NewMemoryCache()
		evaluator := factory.new(cache)
		ctx := RuleContext{Snapshot: map[string]any{"size": int64(1)}}
		for i := 0; i < 3; i++ {
			got, err := evaluator.Evaluate(ctx, "size == 1")
			if err != nil {
				t.Fatalf("%s: evaluate: %v", factory.name, err)
			}
			if got != true {
				t.Fatalf("%s: expected true, got %v", factory.name, got)
			}
		}
		if cache.Len() != 1 {
			t.Fatalf("%s: expected 1 cached program, got %d", factory.name, cache.Len())
		}
	}
}

func TestCompiledRuleReevaluates(t *testing.T) {
	for _, factory := range evaluatorFactories {
		rule, err := factory.new(nil).Compile("size > 2")
		if err != nil {
			t.Fatalf("%s: compile: %v", factory.name, err)
		}
		for size, want := range map[int64]bool{1: false, 3: true} {
			got, err := rule.Evaluate(RuleContext{Snapshot: map[string]any{"size": size}})
			if err != nil {
				t.Fatalf("%s: evaluate: %v", factory.name, err)
			}
			if got != want {
				t.Fatalf("%s: size=%d expected %v, got %v", factory.name, size, want, got)
			}
		}
	}
}
