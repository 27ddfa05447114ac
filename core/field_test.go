package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestField_StringValue(t *testing.T) {
	var maxUint uint64 = math.MaxUint64
	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{
			name:  "String field",
			field: Field{Type: StringType, Str: "hello"},
			want:  "hello",
		},
		{
			name:  "Int field",
			field: Field{Type: IntType, Int64: 42},
			want:  "42",
		},
		{
			name:  "Uint64 field above MaxInt64",
			field: Field{Type: Uint64Type, Int64: int64(maxUint)},
			want:  "18446744073709551615",
		},
		{
			name:  "Float field",
			field: Field{Type: Float64Type, Float64: 1.5},
			want:  "1.5",
		},
		{
			name:  "Bool field (true)",
			field: Field{Type: BoolType, Int64: 1},
			want:  "true",
		},
		{
			name:  "Time field",
			field: Field{Type: TimeType, Int64: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC).UnixNano()},
			want:  "2026-03-01T08:00:00Z",
		},
		{
			name:  "Duration field",
			field: Field{Type: DurationType, Int64: int64(1500 * time.Millisecond)},
			want:  "1.5s",
		},
		{
			name:  "Error field",
			field: Field{Type: ErrorType, Str: errors.New("boom").Error()},
			want:  "boom",
		},
		{
			name:  "Any field",
			field: Field{Type: AnyType, Any: []int{1, 2}},
			want:  "[1 2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.StringValue(); got != tt.want {
				t.Errorf("StringValue() = %q, want %q", got, tt.want)
			}
		})
	}
}
