// Package rule models tenant-configured business rules: deterministic
// boosts and penalties applied after diversification. Conditions are CEL
// expressions over candidate attributes, compiled once at profile load.
package rule

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/kailas-cloud/visearch/internal/domain"
)

// Effect is how a rule mutates the composite score.
type Effect string

// Supported effects.
const (
	Multiply Effect = "multiply"
	Add      Effect = "add"
)

// Amount bounds keep a single rule from dominating the ranking.
const (
	MaxMultiplier = 10.0
	MaxAddend     = 1.0
)

// Rule is a single tenant-declared boost or penalty.
type Rule struct {
	name      string
	condition string
	effect    Effect
	amount    float64
}

// New validates and creates a rule. The condition is syntax-checked at
// Compile time, not here.
func New(name, condition string, effect Effect, amount float64) (Rule, error) {
	if name == "" {
		return Rule{}, fmt.Errorf("%w: name is required", domain.ErrInvalidRule)
	}
	if condition == "" {
		return Rule{}, fmt.Errorf("%w: condition is required for rule %q", domain.ErrInvalidRule, name)
	}
	switch effect {
	case Multiply:
		if amount <= 0 || amount > MaxMultiplier {
			return Rule{}, fmt.Errorf("%w: rule %q multiplier must be in (0, %g]",
				domain.ErrInvalidRule, name, MaxMultiplier)
		}
	case Add:
		if amount < -MaxAddend || amount > MaxAddend {
			return Rule{}, fmt.Errorf("%w: rule %q addend must be in [-%g, %g]",
				domain.ErrInvalidRule, name, MaxAddend, MaxAddend)
		}
	default:
		return Rule{}, fmt.Errorf("%w: rule %q has unknown effect %q", domain.ErrInvalidRule, name, effect)
	}
	return Rule{name: name, condition: condition, effect: effect, amount: amount}, nil
}

// Name returns the rule name.
func (r Rule) Name() string { return r.name }

// Condition returns the CEL condition source.
func (r Rule) Condition() string { return r.condition }

// Effect returns the score mutation kind.
func (r Rule) Effect() Effect { return r.effect }

// Amount returns the multiplier or addend.
func (r Rule) Amount() float64 { return r.amount }

// Apply returns the score after this rule fires.
func (r Rule) Apply(score float64) float64 {
	if r.effect == Multiply {
		return score * r.amount
	}
	return score + r.amount
}

// Compiled pairs a rule with its evaluable CEL program.
type Compiled struct {
	Rule
	program cel.Program
}

// Matches evaluates the rule condition against a candidate activation.
// A program error (e.g. a missing attribute) means the rule does not fire.
func (c Compiled) Matches(activation map[string]any) (bool, error) {
	out, _, err := c.program.Eval(activation)
	if err != nil {
		return false, fmt.Errorf("eval rule %q: %w", c.name, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: rule %q condition is not boolean", domain.ErrInvalidRule, c.name)
	}
	return matched, nil
}

// Env builds the CEL environment exposing candidate attributes to
// rule conditions.
func Env() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("price", cel.DoubleType),
		cel.Variable("brand", cel.StringType),
		cel.Variable("category", cel.StringType),
		cel.Variable("tags", cel.ListType(cel.StringType)),
		cel.Variable("in_stock", cel.BoolType),
		cel.Variable("margin_pct", cel.DoubleType),
		cel.Variable("age_days", cel.IntType),
		cel.Variable("level", cel.StringType),
		cel.Variable("prior", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("create rule env: %w", err)
	}
	return env, nil
}

// Compile type-checks and compiles rules in declared order. Any invalid
// condition fails the whole set: a half-applied rule list would make
// ranking nondeterministic across profile reloads.
func Compile(rules []Rule) ([]Compiled, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	env, err := Env()
	if err != nil {
		return nil, err
	}

	compiled := make([]Compiled, 0, len(rules))
	for _, r := range rules {
		celAST, issues := env.Compile(r.condition)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("%w: rule %q: %v", domain.ErrInvalidRule, r.name, issues.Err())
		}
		if celAST.OutputType() != cel.BoolType {
			return nil, fmt.Errorf("%w: rule %q condition must be boolean, got %s",
				domain.ErrInvalidRule, r.name, celAST.OutputType())
		}
		prg, err := env.Program(celAST)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %q: %v", domain.ErrInvalidRule, r.name, err)
		}
		compiled = append(compiled, Compiled{Rule: r, program: prg})
	}
	return compiled, nil
}
