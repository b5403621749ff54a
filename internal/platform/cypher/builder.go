// Package cypher builds parameterized Cypher queries from composable
// predicate lists. Filters always bind values through named $parameters;
// caller input never ends up concatenated into query text.
package cypher

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition contributes one predicate to a WHERE clause and registers
// its parameter values under unique names.
type Condition interface {
	appendCypher(buf *strings.Builder, params map[string]any, paramIndex *int)
}

type eqCondition struct {
	expr  string
	value any
}

// Eq matches expr = $param.
func Eq(expr string, value any) Condition {
	return eqCondition{expr: expr, value: value}
}

func (c eqCondition) appendCypher(buf *strings.Builder, params map[string]any, paramIndex *int) {
	name := nextParam(paramIndex)
	buf.WriteString(c.expr)
	buf.WriteString(" = $")
	buf.WriteString(name)
	params[name] = c.value
}

type containsCondition struct {
	expr  string
	value string
}

// Contains matches expr CONTAINS $param. Matching is case-sensitive,
// the same as the store's CONTAINS operator.
func Contains(expr, value string) Condition {
	return containsCondition{expr: expr, value: value}
}

func (c containsCondition) appendCypher(buf *strings.Builder, params map[string]any, paramIndex *int) {
	name := nextParam(paramIndex)
	buf.WriteString(c.expr)
	buf.WriteString(" CONTAINS $")
	buf.WriteString(name)
	params[name] = c.value
}

type gteCondition struct {
	expr  string
	value any
}

func Gte(expr string, value any) Condition {
	return gteCondition{expr: expr, value: value}
}

func (c gteCondition) appendCypher(buf *strings.Builder, params map[string]any, paramIndex *int) {
	name := nextParam(paramIndex)
	buf.WriteString(c.expr)
	buf.WriteString(" >= $")
	buf.WriteString(name)
	params[name] = c.value
}

type lteCondition struct {
	expr  string
	value any
}

func Lte(expr string, value any) Condition {
	return lteCondition{expr: expr, value: value}
}

func (c lteCondition) appendCypher(buf *strings.Builder, params map[string]any, paramIndex *int) {
	name := nextParam(paramIndex)
	buf.WriteString(c.expr)
	buf.WriteString(" <= $")
	buf.WriteString(name)
	params[name] = c.value
}

type inCondition struct {
	expr   string
	values []any
}

func In(expr string, values []any) Condition {
	return inCondition{expr: expr, values: values}
}

func (c inCondition) appendCypher(buf *strings.Builder, params map[string]any, paramIndex *int) {
	if len(c.values) == 0 {
		buf.WriteString("false")
		return
	}
	name := nextParam(paramIndex)
	buf.WriteString(c.expr)
	buf.WriteString(" IN $")
	buf.WriteString(name)
	params[name] = c.values
}

type exprCondition struct {
	expr string
	args []any
}

// Expr inserts a raw predicate; each ? is replaced with a fresh named
// parameter bound to the corresponding argument.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) appendCypher(buf *strings.Builder, params map[string]any, paramIndex *int) {
	if len(c.args) == 0 {
		buf.WriteString(c.expr)
		return
	}

	next := 0
	for i := 0; i < len(c.expr); i++ {
		if c.expr[i] == '?' && next < len(c.args) {
			name := nextParam(paramIndex)
			buf.WriteString("$")
			buf.WriteString(name)
			params[name] = c.args[next]
			next++
			continue
		}
		buf.WriteByte(c.expr[i])
	}
}

// Or joins a group of conditions with OR, wrapped in parentheses.
func Or(conditions ...Condition) Condition {
	return orCondition{conditions: conditions}
}

type orCondition struct {
	conditions []Condition
}

func (c orCondition) appendCypher(buf *strings.Builder, params map[string]any, paramIndex *int) {
	if len(c.conditions) == 0 {
		buf.WriteString("false")
		return
	}
	buf.WriteString("(")
	for i, cond := range c.conditions {
		if i > 0 {
			buf.WriteString(" OR ")
		}
		cond.appendCypher(buf, params, paramIndex)
	}
	buf.WriteString(")")
}

type matchPart struct {
	pattern  string
	optional bool
}

// Builder assembles MATCH parts, a WHERE predicate list, and the tail
// clauses of a read query.
type Builder struct {
	matches []matchPart
	where   []Condition
	with    []string
	returns []string
	orderBy []string
	limit   int
	// limitParam binds LIMIT through a parameter instead of a literal.
	limitParam bool
}

func Match(pattern string) *Builder {
	b := &Builder{}
	return b.Match(pattern)
}

func (b *Builder) Match(pattern string) *Builder {
	b.matches = append(b.matches, matchPart{pattern: pattern})
	return b
}

// OptionalMatch adds a nullable join. It always renders after WHERE, so
// conditions must not reference aliases bound here.
func (b *Builder) OptionalMatch(pattern string) *Builder {
	b.matches = append(b.matches, matchPart{pattern: pattern, optional: true})
	return b
}

func (b *Builder) Where(conditions ...Condition) *Builder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *Builder) With(parts ...string) *Builder {
	b.with = append(b.with, parts...)
	return b
}

func (b *Builder) Return(parts ...string) *Builder {
	b.returns = append(b.returns, parts...)
	return b
}

func (b *Builder) OrderBy(parts ...string) *Builder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *Builder) Limit(limit int) *Builder {
	b.limit = limit
	b.limitParam = true
	return b
}

// Build renders the query text and the parameter map.
func (b *Builder) Build() (string, map[string]any, error) {
	if len(b.matches) == 0 {
		return "", nil, fmt.Errorf("match pattern is required")
	}
	if len(b.returns) == 0 {
		return "", nil, fmt.Errorf("return items are required")
	}

	var buf strings.Builder
	params := make(map[string]any, len(b.where)+1)
	paramIndex := 0

	// Optional parts render after WHERE so the predicates filter the base
	// rows instead of attaching to the optional pattern.
	first := true
	for _, m := range b.matches {
		if m.optional {
			continue
		}
		if !first {
			buf.WriteString("\n")
		}
		first = false
		buf.WriteString("MATCH ")
		buf.WriteString(m.pattern)
	}
	if first {
		return "", nil, fmt.Errorf("at least one non-optional match is required")
	}

	if len(b.where) > 0 {
		buf.WriteString("\nWHERE ")
		for i, c := range b.where {
			if i > 0 {
				buf.WriteString("\n  AND ")
			}
			c.appendCypher(&buf, params, &paramIndex)
		}
	}

	for _, m := range b.matches {
		if !m.optional {
			continue
		}
		buf.WriteString("\nOPTIONAL MATCH ")
		buf.WriteString(m.pattern)
	}

	if len(b.with) > 0 {
		buf.WriteString("\nWITH ")
		buf.WriteString(strings.Join(b.with, ", "))
	}

	buf.WriteString("\nRETURN ")
	buf.WriteString(strings.Join(b.returns, ", "))

	if len(b.orderBy) > 0 {
		buf.WriteString("\nORDER BY ")
		buf.WriteString(strings.Join(b.orderBy, ", "))
	}

	if b.limitParam && b.limit > 0 {
		buf.WriteString("\nLIMIT $limit")
		params["limit"] = b.limit
	}

	return buf.String(), params, nil
}

func nextParam(paramIndex *int) string {
	*paramIndex = *paramIndex + 1
	return "p" + strconv.Itoa(*paramIndex)
}
