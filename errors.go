package tableau

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMalformedConstraint is the parent of ErrNoRelation, ErrEquality and
// ErrRHS, so a single errors.Is check tells a badly written constraint apart
// from the other *ConstraintError causes.
var ErrMalformedConstraint = errors.New("lp: malformed constraint")

var (
	ErrNoRelation = &malformedError{"lp: constraint has no <= or >= operator"}
	ErrEquality   = &malformedError{"lp: equality constraints need artificial variables"}
	ErrRHS        = &malformedError{"lp: constraint right-hand side is not a finite number"}
)

var (
	ErrEmpty           = errors.New("lp: empty expression")
	ErrMinimize        = errors.New("lp: minimization is not supported, negate the objective")
	ErrNotFinite       = errors.New("lp: coefficient is NaN or infinite")
	ErrUnknownVariable = errors.New("lp: constraint references a variable absent from the objective")
	ErrNameCollision   = errors.New("lp: decision variable collides with a slack variable name")
	ErrInfeasibleBasis = errors.New("lp: slack basis is infeasible")
	ErrUnbounded       = errors.New("lp: problem is unbounded")
	ErrIterationLimit  = errors.New("lp: iteration limit reached")
)

type malformedError struct {
	msg string
}

func (e *malformedError) Error() string { return e.msg }

func (e *malformedError) Unwrap() error { return ErrMalformedConstraint }

// ParseError reports a token of a linear expression that is neither a sign
// nor a term.
type ParseError struct {
	Expr  string
	Token string
	Err   error
}

// Error formats the expression and the offending token.
func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("lp: parse %q: %v", e.Expr, e.Err)
	}
	return fmt.Sprintf("lp: parse %q: bad token %q: %v", e.Expr, e.Token, e.Err)
}

// Unwrap returns the reason the token was rejected.
func (e *ParseError) Unwrap() error { return e.Err }

// ConstraintError ties a failure to the constraint that caused it. Index is
// zero-based.
type ConstraintError struct {
	Index      int
	Constraint string
	Err        error
}

// Error formats the one-based constraint number, its text and the cause.
func (e *ConstraintError) Error() string {
	if e.Constraint == "" {
		return fmt.Sprintf("constraint %d: %v", e.Index+1, e.Err)
	}
	return fmt.Sprintf("constraint %d %q: %v", e.Index+1, e.Constraint, e.Err)
}

// Unwrap returns the cause.
func (e *ConstraintError) Unwrap() error { return e.Err }

// UnboundedError is returned by the pivot engine when the entering column has
// no positive entry in any constraint row.
type UnboundedError struct {
	Column   int
	Variable string
}

// Error names the unbounded variable.
func (e *UnboundedError) Error() string {
	return fmt.Sprintf("%v: %s can grow without limit", ErrUnbounded, e.Variable)
}

// Unwrap returns ErrUnbounded.
func (e *UnboundedError) Unwrap() error { return ErrUnbounded }
