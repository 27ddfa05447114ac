package adapter

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/philipp01105/hostlog/bridge"
	"github.com/philipp01105/hostlog/core"
	"github.com/philipp01105/hostlog/formatter"
)

func defaultFormatter(f formatter.Formatter) formatter.Formatter {
	if f == nil {
		return formatter.NewTextFormatter(formatter.Config{})
	}
	return f
}

// emit formats entry, releases it to the pool and hands the record to sink.
func emit(ctx context.Context, sink bridge.Sink, f formatter.Formatter, entry *core.Entry) {
	rec := core.NewRecord(entry.Level, f.Format(entry))
	core.PutEntry(entry)

	bridge.LogContext(ctx, sink, rec)
}

// valueField converts a loosely typed value into the closest core.Field.
func valueField(key string, v interface{}) core.Field {
	switch val := v.(type) {
	case string:
		return core.Field{Key: key, Type: core.StringType, Str: val}
	case int:
		return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
	case int8:
		return core.Field{Key: key, Type: core.Int64Type, Int64: int64(val)}
	case int16:
		return core.Field{Key: key, Type: core.Int64Type, Int64: int64(val)}
	case int32:
		return core.Field{Key: key, Type: core.Int64Type, Int64: int64(val)}
	case int64:
		return core.Field{Key: key, Type: core.Int64Type, Int64: val}
	case uint:
		return core.Field{Key: key, Type: core.Uint64Type, Int64: int64(val)}
	case uint8:
		return core.Field{Key: key, Type: core.Uint64Type, Int64: int64(val)}
	case uint16:
		return core.Field{Key: key, Type: core.Uint64Type, Int64: int64(val)}
	case uint32:
		return core.Field{Key: key, Type: core.Uint64Type, Int64: int64(val)}
	case uint64:
		return core.Field{Key: key, Type: core.Uint64Type, Int64: int64(val)}
	case float32:
		return core.Field{Key: key, Type: core.Float64Type, Float64: float64(val)}
	case float64:
		return core.Field{Key: key, Type: core.Float64Type, Float64: val}
	case bool:
		b := int64(0)
		if val {
			b = 1
		}
		return core.Field{Key: key, Type: core.BoolType, Int64: b}
	case time.Time:
		return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
	case time.Duration:
		return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
	case error:
		return core.Field{Key: key, Type: core.ErrorType, Str: val.Error()}
	case fmt.Stringer:
		return core.Field{Key: key, Type: core.StringType, Str: val.String()}
	default:
		return core.Field{Key: key, Type: core.AnyType, Any: v}
	}
}

// appendMap appends m in key order so output is stable.
func appendMap(fields []core.Field, prefix string, m map[string]interface{}) []core.Field {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := m[k].(map[string]interface{}); ok {
			fields = appendMap(fields, key, nested)
			continue
		}
		fields = append(fields, valueField(key, m[k]))
	}
	return fields
}
