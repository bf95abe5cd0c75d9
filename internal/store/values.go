package store

import (
	"fmt"

	"github.com/uakotik/DB-lab5/internal/graph"
	"github.com/uakotik/DB-lab5/internal/types"
)

func parseError(op, format string, args ...any) error {
	return types.NewError(graph.ErrCodeGraphResultParsing,
		fmt.Sprintf("%s: %s", op, fmt.Sprintf(format, args...)))
}

// stringColumn collects column key from every record.
// Null values are skipped; the result is never nil.
func stringColumn(op string, res graph.QueryResult, key string) ([]string, error) {
	out := make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		v, ok := rec[key]
		if !ok {
			return nil, parseError(op, "column %q missing", key)
		}
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, parseError(op, "column %q: want string, got %T", key, v)
		}
		out = append(out, s)
	}
	return out, nil
}

// toFloat accepts the numeric shapes the driver returns for a property or
// aggregate. Null is treated as zero.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float32:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	default:
		return 0, false
	}
}

// singleFloat reads a numeric aggregate from a one-row result.
// An empty result yields zero.
func singleFloat(op string, res graph.QueryResult, key string) (float64, error) {
	if len(res.Records) == 0 {
		return 0, nil
	}
	rec, ok := res.Single()
	if !ok {
		return 0, parseError(op, "want one row, got %d", len(res.Records))
	}
	f, ok := toFloat(rec[key])
	if !ok {
		return 0, parseError(op, "column %q: want number, got %T", key, rec[key])
	}
	return f, nil
}

func singleInt(op string, res graph.QueryResult, key string) (int64, error) {
	if len(res.Records) == 0 {
		return 0, nil
	}
	rec, ok := res.Single()
	if !ok {
		return 0, parseError(op, "want one row, got %d", len(res.Records))
	}
	n, ok := toInt(rec[key])
	if !ok {
		return 0, parseError(op, "column %q: want integer, got %T", key, rec[key])
	}
	return n, nil
}
