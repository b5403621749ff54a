// Package graphdb implements the domain repositories on top of the Neo4j
// graph. Queries return flat records; decoding into domain types happens
// here, aggregation happens in the use cases.
package graphdb

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Runner executes read statements. *graph.Pool satisfies it.
type Runner interface {
	ExecuteRead(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func asFloatPtr(v any) *float64 {
	f, ok := asFloat(v)
	if !ok {
		return nil
	}
	return &f
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asTime accepts the driver's temporal types as well as ISO date strings,
// since imported datasets store dates either way.
func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case dbtype.Date:
		return t.Time(), true
	case dbtype.LocalDateTime:
		return t.Time(), true
	case string:
		if parsed, err := time.Parse("2006-01-02", t); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func asTimePtr(v any) *time.Time {
	t, ok := asTime(v)
	if !ok {
		return nil
	}
	return &t
}

func asStringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	case string:
		if s == "" {
			return nil
		}
		return []string{s}
	default:
		return nil
	}
}
