package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var ErrEmptyExpression = errors.New("empty where expression")

// Where is an optional row predicate written in expr syntax, e.g.
//
//	population > 1e7 && location != "China"
//
// Variables are the CSV columns: continent, location, date (ISO string) and
// every metric column. Absent metrics are nil.
type Where struct {
	source  string
	program *vm.Program
}

func CompileWhere(source string) (*Where, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptyExpression
	}
	program, err := expr.Compile(source, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile where expression: %w", err)
	}
	return &Where{source: source, program: program}, nil
}

func (w *Where) String() string {
	if w == nil {
		return ""
	}
	return w.source
}

// Match evaluates the predicate for row. Evaluation errors, for example
// comparing an absent metric, count as a non-match.
func (w *Where) Match(row Row) bool {
	ok, _ := w.eval(row)
	return ok
}

func (w *Where) eval(row Row) (bool, error) {
	if w == nil {
		return true, nil
	}
	out, err := expr.Run(w.program, rowEnv(row))
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	return ok && b, nil
}

func rowEnv(row Row) map[string]any {
	env := make(map[string]any, 3+numMetrics)
	env["continent"] = row.Continent
	env["location"] = row.Location
	env["date"] = row.DateRaw
	for m := Metric(0); m < numMetrics; m++ {
		if v, ok := row.Metric(m); ok {
			env[m.Column()] = v
		} else {
			env[m.Column()] = nil
		}
	}
	return env
}
