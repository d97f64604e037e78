package stations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input any
		total int
		want  [][]string
	}{
		{
			name:  "list of code lists",
			input: []any{[]any{"a", "b"}, []any{3.0, true, ""}, "x"},
			want:  [][]string{{"A", "B"}, {"3"}, {}},
		},
		{
			name:  "map of flag sets",
			input: map[string]any{"0": map[string]any{"ab": true, "cd": false}, "2": map[string]any{"x": 1.0}},
			want:  [][]string{{"AB"}, {}, {"X"}},
		},
		{
			name:  "explicit total pads",
			input: []any{[]any{"a"}},
			total: 3,
			want:  [][]string{{"A"}, {}, {}},
		},
		{
			name:  "explicit total truncates",
			input: []any{[]any{"a"}, []any{"b"}},
			total: 1,
			want:  [][]string{{"A"}},
		},
		{
			name:  "non numeric keys ignored for length",
			input: map[string]any{"foo": []any{"a"}, "1": []any{"b"}},
			want:  [][]string{{}, {"B"}},
		},
		{
			name:  "scalar input",
			input: "nothing",
			want:  [][]string{},
		},
		{
			name:  "nil input with total",
			input: nil,
			total: 2,
			want:  [][]string{{}, {}},
		},
		{
			name:  "huge numeric key",
			input: map[string]any{"9999999999999": []any{"a"}, "0": []any{"b"}},
			want:  [][]string{},
		},
		{
			name:  "total above limit",
			input: []any{[]any{"a"}},
			total: MaxStations + 1,
			want:  [][]string{},
		},
		{
			name: "zero flags of every numeric type",
			input: []any{map[string]any{
				"a": int32(0), "b": uint(0), "c": float32(0),
				"d": int32(2), "e": uint(1), "f": float32(0.5),
			}},
			want: [][]string{{"D", "E", "F"}},
		},
		{
			name:  "stored form round trips",
			input: map[string]map[string]bool{"0": {"A": true}, "1": {"B": true, "C": false}},
			want:  [][]string{{"A"}, {"B"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input, tt.total))
		})
	}
}

func TestNormalizeAtLimit(t *testing.T) {
	got := Normalize(map[string]any{"999": []any{"z"}}, 0)
	assert.Len(t, got, MaxStations)
	assert.Equal(t, []string{"Z"}, got[MaxStations-1])
	assert.Empty(t, got[0])
}

func TestSerialize(t *testing.T) {
	got := Serialize([]any{[]any{"a", "b"}, nil}, 0)
	assert.Equal(t, map[string]map[string]bool{
		"0": {"A": true, "B": true},
		"1": {},
	}, got)

	assert.Empty(t, Serialize(nil, 0))
}
