package tableau

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	errBadToken     = errors.New("expected + or - or a term like 3x1")
	errDanglingSign = errors.New("sign is not followed by a term")
	errMissingSign  = errors.New("terms must be separated by + or -")

	// optional magnitude, then a name starting with a letter
	termRe = regexp.MustCompile(`^(\d+(?:\.\d*)?|\.\d+)?([A-Za-z_][A-Za-z0-9_]*)$`)
)

// Term is one coefficient/variable pair of a linear expression.
type Term struct {
	Coef float64
	Name string
}

// ParseExpression reads a space separated linear expression such as
// "3x1 - x2 + - 2x3" and returns its terms in order. Consecutive signs
// compose, so "- - x1" is +x1. Repeated names are returned as separate terms.
func ParseExpression(expr string) ([]Term, error) {
	tokens := strings.Fields(expr)
	if len(tokens) == 0 {
		return nil, &ParseError{Expr: expr, Err: ErrEmpty}
	}

	terms := make([]Term, 0, (len(tokens)+1)/2)
	sign := 1.0
	pending := false
	for _, tok := range tokens {
		switch tok {
		case "+":
			pending = true
			continue
		case "-":
			sign = -sign
			pending = true
			continue
		}

		m := termRe.FindStringSubmatch(tok)
		if m == nil {
			return nil, &ParseError{Expr: expr, Token: tok, Err: errBadToken}
		}
		if len(terms) > 0 && !pending {
			return nil, &ParseError{Expr: expr, Token: tok, Err: errMissingSign}
		}

		coef := 1.0
		if m[1] != "" {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return nil, &ParseError{Expr: expr, Token: tok, Err: err}
			}
			coef = v
		}
		terms = append(terms, Term{Coef: sign * coef, Name: m[2]})
		sign = 1.0
		pending = false
	}
	if pending {
		return nil, &ParseError{Expr: expr, Token: tokens[len(tokens)-1], Err: errDanglingSign}
	}
	return terms, nil
}

// ParseObjective parses an objective such as "Maximize 8x1 + 10x2". The
// Maximize keyword is optional.
func ParseObjective(objective string) ([]Term, error) {
	fields := strings.Fields(objective)
	if len(fields) > 0 {
		switch strings.ToLower(fields[0]) {
		case "maximize", "maximise":
			fields = fields[1:]
		case "minimize", "minimise":
			return nil, ErrMinimize
		}
	}
	terms, err := ParseExpression(strings.Join(fields, " "))
	if err != nil {
		return nil, errors.Wrap(err, "objective")
	}
	return terms, nil
}

// Relation is the operator of a constraint.
type Relation int

const (
	LessEq Relation = iota
	GreaterEq
)

func (r Relation) String() string {
	if r == GreaterEq {
		return ">="
	}
	return "<="
}

// Constraint is a parsed "<expression> <= <number>" or ">=" row.
type Constraint struct {
	Terms    []Term
	Relation Relation
	RHS      float64
}

// ParseConstraint splits s on its relational operator and parses both sides.
func ParseConstraint(s string) (Constraint, error) {
	var c Constraint

	op := ""
	for _, candidate := range []string{"<=", ">="} {
		if strings.Contains(s, candidate) {
			if op != "" {
				return c, errors.Wrap(ErrNoRelation, "more than one operator")
			}
			op = candidate
		}
	}
	if op == "" {
		if strings.Contains(s, "=") {
			return c, ErrEquality
		}
		return c, ErrNoRelation
	}

	parts := strings.Split(s, op)
	if len(parts) != 2 {
		return c, errors.Wrapf(ErrNoRelation, "operator %s appears more than once", op)
	}
	if strings.Contains(parts[0], "=") || strings.Contains(parts[1], "=") {
		return c, errors.Wrap(ErrNoRelation, "more than one operator")
	}

	rhs, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || math.IsNaN(rhs) || math.IsInf(rhs, 0) {
		return c, errors.Wrapf(ErrRHS, "%q", strings.TrimSpace(parts[1]))
	}

	terms, err := ParseExpression(parts[0])
	if err != nil {
		return c, err
	}

	c.Terms = terms
	c.RHS = rhs
	if op == ">=" {
		c.Relation = GreaterEq
	}
	return c, nil
}
