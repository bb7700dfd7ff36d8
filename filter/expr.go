package filter

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/opencamara/camara-go/camara"
)

// Filter is a compiled boolean expression over the fields of a record.
type Filter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithFunctions adds custom helper functions
func WithFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// Compiler compiles expressions into filters.
type Compiler struct {
	helpers map[string]any
	cache   *lruCache
}

// NewCompiler creates a new expr-based filter compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		helpers: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var defaultCompiler = NewCompiler(WithCache(100))

// Compile compiles expression with the default helpers, caching the result.
func Compile(expression string) (*Filter, error) {
	return defaultCompiler.Compile(expression)
}

// Compile compiles an expression into an executable filter. Record fields are
// referenced by their JSON names; fields a record lacks evaluate to nil.
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(compileEnvironment(c.helpers)),
		expr.AllowUndefinedVariables(), // record fields are only known at runtime
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{
		expression: expression,
		program:    program,
		helpers:    c.helpers,
	}

	if c.cache != nil {
		c.cache.Put(expression, f)
	}

	return f, nil
}

// Clear removes all cached filters
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against one record.
func (f *Filter) Match(record camara.Record) (bool, error) {
	ok, err := f.run(record)
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, Index: -1, Reason: err.Error(), Err: err}
	}
	return ok, nil
}

// Apply returns the records that match, in their original order. The first
// record that cannot be evaluated aborts with an EvaluationError.
func (f *Filter) Apply(records []camara.Record) ([]camara.Record, error) {
	matched := make([]camara.Record, 0, len(records))
	for i, record := range records {
		ok, err := f.run(record)
		if err != nil {
			return nil, &EvaluationError{Expression: f.expression, Index: i, Reason: err.Error(), Err: err}
		}
		if ok {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

func (f *Filter) run(record camara.Record) (bool, error) {
	result, err := expr.Run(f.program, runtimeEnvironment(f.helpers, record))
	if err != nil {
		return false, err
	}
	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool), nil
}

// compileEnvironment declares the helpers plus the per-record ones so their
// signatures are checked at compile time.
func compileEnvironment(helpers map[string]any) map[string]any {
	env := make(map[string]any, len(helpers)+2)
	maps.Copy(env, helpers)
	env["has"] = func(string) bool { return false }
	env["record"] = map[string]any{}
	return env
}

// runtimeEnvironment exposes the record's fields as variables. Helpers win
// over fields of the same name; such fields stay reachable via record["name"].
func runtimeEnvironment(helpers map[string]any, record camara.Record) map[string]any {
	env := make(map[string]any, len(record)+len(helpers)+2)
	maps.Copy(env, record)
	maps.Copy(env, helpers)

	fields := map[string]any(record)
	env["record"] = fields
	env["has"] = func(name string) bool {
		v, ok := fields[name]
		return ok && v != nil
	}
	return env
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// Date helpers
	funcs["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	funcs["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	funcs["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	funcs["parseDate"] = func(v any) time.Time {
		return parseDate(v)
	}
	funcs["daysSince"] = func(v any) int {
		t := parseDate(v)
		if t.IsZero() {
			return 0
		}
		return int(time.Since(t).Hours() / 24)
	}
	funcs["year"] = func(v any) int {
		return parseDate(v).Year()
	}
	funcs["now"] = time.Now

	// String helpers. contains, startsWith and endsWith are expr operators
	// (case-sensitive); like is the case-insensitive substring match.
	funcs["like"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["lower"] = strings.ToLower
	funcs["upper"] = strings.ToUpper
	funcs["str"] = func(v any) string {
		if v == nil {
			return ""
		}
		return fmt.Sprint(v)
	}

	return funcs
}

// dateLayouts are the formats the API uses for dates and timestamps.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// parseDate converts an API date string (or a time) into a time. Anything
// else yields the zero time.
func parseDate(v any) time.Time {
	switch tv := v.(type) {
	case time.Time:
		return tv
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, tv); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
