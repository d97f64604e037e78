package chipper

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func step(name string, reps any) RawStep {
	return RawStep{Name: ptr(name), Reps: RepsOf(reps)}
}

func TestRepScheme(t *testing.T) {
	scheme := DefaultRepScheme()
	require.Len(t, scheme, 9)

	t.Run("non-increasing", func(t *testing.T) {
		for i := 1; i < len(scheme); i++ {
			assert.LessOrEqual(t, scheme[i], scheme[i-1])
		}
	})

	t.Run("clamps past the end", func(t *testing.T) {
		for i := 0; i < 30; i++ {
			want := scheme[min(i, len(scheme)-1)]
			assert.Equal(t, want, RepTarget(i), "index %d", i)
		}
	})

	t.Run("negative index uses first entry", func(t *testing.T) {
		assert.Equal(t, 50, RepTarget(-3))
	})

	t.Run("empty scheme falls back to 10", func(t *testing.T) {
		assert.Equal(t, 10, RepScheme{}.Target(0))
		assert.Equal(t, 10, RepScheme(nil).Target(4))
	})

	t.Run("copy does not alias the default", func(t *testing.T) {
		scheme[0] = 1
		assert.Equal(t, 50, RepTarget(0))
	})
}

func TestNewStep(t *testing.T) {
	for i := 0; i < 20; i++ {
		s := NewStep(i, "Cardio")
		assert.Equal(t, "", s.Name)
		assert.Equal(t, defaultRepScheme[min(i, len(defaultRepScheme)-1)], s.Reps)
		assert.Equal(t, "Cardio", s.Category)
	}

	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, Step{Name: "", Reps: 50, Category: "Bodyweight"}, NewStep(0, ""))
	})

	t.Run("beyond scheme length", func(t *testing.T) {
		assert.Equal(t, 10, NewStep(15, "").Reps)
	})
}

func TestRepsNumber(t *testing.T) {
	tests := []struct {
		name string
		reps Reps
		want float64
	}{
		{"absent", Reps{}, math.NaN()},
		{"null", RepsOf(nil), 0},
		{"true", RepsOf(true), 1},
		{"float", RepsOf(12.4), 12.4},
		{"int64", RepsOf(int64(30)), 30},
		{"numeric string", RepsOf(" 25 "), 25},
		{"blank string", RepsOf("   "), 0},
		{"exponent", RepsOf("1e2"), 100},
		{"hex", RepsOf("0x10"), 16},
		{"binary", RepsOf("0b101"), 5},
		{"signed hex", RepsOf("-0x10"), math.NaN()},
		{"words", RepsOf("abc"), math.NaN()},
		{"trailing junk", RepsOf("12abc"), math.NaN()},
		{"lowercase inf", RepsOf("inf"), math.NaN()},
		{"Infinity", RepsOf("Infinity"), math.Inf(1)},
		{"underscore", RepsOf("1_000"), math.NaN()},
		{"object", RepsOf(map[string]any{}), math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.reps.Number()
			if math.IsNaN(tt.want) {
				assert.True(t, math.IsNaN(got), "got %v", got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepsCount(t *testing.T) {
	tests := []struct {
		name  string
		reps  Reps
		want  int
		valid bool
	}{
		{"integer", RepsOf(20.0), 20, true},
		{"rounds half up", RepsOf(12.5), 13, true},
		{"rounds down", RepsOf("12.49"), 12, true},
		{"zero", RepsOf(0.0), 0, false},
		{"negative", RepsOf(-5.0), 0, false},
		{"rounds to zero", RepsOf(0.3), 0, false},
		{"infinite", RepsOf("Infinity"), 0, false},
		{"too large", RepsOf(1e300), 0, false},
		{"absent", Reps{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.reps.Count()
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("example A", func(t *testing.T) {
		steps := []RawStep{
			step("Burpees", "abc"),
			step("", 20),
			step("Squats", 20),
		}
		got := Normalize(steps, nil)
		require.Len(t, got, 3)
		assert.Equal(t, []int{50, 20, 20}, []int{got[0].Reps, got[1].Reps, got[2].Reps})
		assert.Equal(t, "Burpees", got[0].Name)
		assert.Equal(t, "", got[1].Name)
	})

	t.Run("invalid reps use scheme at index", func(t *testing.T) {
		steps := make([]RawStep, 12)
		for i := range steps {
			steps[i] = step("Row", []any{0.0, -1.0, "", nil, "x"}[i%5])
		}
		steps[3].Reps = Reps{}
		got := Normalize(steps, nil)
		require.Len(t, got, len(steps))
		for i, s := range got {
			assert.Equal(t, RepTarget(i), s.Reps, "index %d", i)
			assert.Greater(t, s.Reps, 0)
		}
	})

	t.Run("trims names and rounds reps", func(t *testing.T) {
		got := Normalize([]RawStep{step("  Wall balls \n", "14.6")}, nil)
		assert.Equal(t, Step{Name: "Wall balls", Reps: 15, Category: ""}, got[0])
	})

	t.Run("absent name", func(t *testing.T) {
		got := Normalize([]RawStep{{Reps: RepsOf(5.0)}}, nil)
		assert.Equal(t, "", got[0].Name)
	})

	t.Run("sanitizer receives raw category", func(t *testing.T) {
		var seen []*string
		sanitize := CategorySanitizerFunc(func(raw *string) string {
			seen = append(seen, raw)
			if raw == nil {
				return "none"
			}
			return strings.ToUpper(*raw)
		})
		steps := []RawStep{
			{Name: ptr("Run"), Category: ptr("cardio")},
			{Name: ptr("Lunge")},
		}
		got := Normalize(steps, sanitize)
		assert.Equal(t, "CARDIO", got[0].Category)
		assert.Equal(t, "none", got[1].Category)
		require.Len(t, seen, 2)
		assert.Nil(t, seen[1])
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Normalize(nil, nil))
	})
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		name string
		step RawStep
		want bool
	}{
		{"complete", step("Burpees", 20), false},
		{"numeric string", step("Burpees", "20"), false},
		{"fractional", step("Burpees", 0.3), false},
		{"blank name", step("   ", 20), true},
		{"absent name", RawStep{Reps: RepsOf(20)}, true},
		{"zero reps", step("Burpees", 0), true},
		{"negative reps", step("Burpees", -4), true},
		{"text reps", step("Burpees", "lots"), true},
		{"absent reps", RawStep{Name: ptr("Burpees")}, true},
		{"infinite reps", step("Burpees", "Infinity"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Incomplete(tt.step))
		})
	}

	t.Run("rows", func(t *testing.T) {
		rows := IncompleteRows([]RawStep{step("A", 1), step("", 1), step("C", "x")})
		assert.Equal(t, []int{1, 2}, rows)
	})
}

func TestGroup(t *testing.T) {
	t.Run("example A", func(t *testing.T) {
		got := Group([]RawStep{
			step("Burpees", "abc"),
			step("", 20),
			step("Squats", 20),
		})
		want := []Bucket{
			{Reps: RepsKey(20), Items: []Item{
				{Name: "Movement", Category: "", Order: 2},
				{Name: "Squats", Category: "", Order: 3},
			}},
			{Reps: OtherKey, Items: []Item{
				{Name: "Burpees", Category: "", Order: 1},
			}},
		}
		assert.Equal(t, want, got)

		data, err := json.Marshal(got)
		require.NoError(t, err)
		assert.JSONEq(t, `[
			{"reps":20,"items":[{"name":"Movement","category":"","order":2},{"name":"Squats","category":"","order":3}]},
			{"reps":"Other","items":[{"name":"Burpees","category":"","order":1}]}
		]`, string(data))
	})

	t.Run("example B empty list", func(t *testing.T) {
		got := Group([]RawStep{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("example C non-list", func(t *testing.T) {
		assert.Empty(t, GroupValue(nil))
		assert.Empty(t, GroupValue("steps"))
		assert.Empty(t, GroupValue(map[string]any{"0": map[string]any{"name": "Row"}}))
	})

	t.Run("descending with other last", func(t *testing.T) {
		got := Group([]RawStep{
			step("A", 10),
			step("B", "nope"),
			step("C", 40),
			step("D", 0),
			step("E", 10.4),
			step("F", 25),
			{Name: ptr("G")},
		})
		keys := make([]string, len(got))
		for i, b := range got {
			keys[i] = b.Reps.String()
		}
		assert.Equal(t, []string{"40", "25", "10", "Other"}, keys)
		assert.Equal(t, []int{1, 5}, orders(got[2].Items))
		assert.Equal(t, []int{2, 4, 7}, orders(got[3].Items))
	})

	t.Run("partitions input once in order", func(t *testing.T) {
		input := []RawStep{
			step("A", 30), step("B", 20), step("C", 30), step("D", "x"),
			step("E", 20), step("F", 50), step("G", 30.2),
		}
		got := Group(input)
		seen := make(map[int]bool)
		for _, b := range got {
			prev := 0
			for _, item := range b.Items {
				assert.Greater(t, item.Order, prev)
				prev = item.Order
				assert.False(t, seen[item.Order])
				seen[item.Order] = true
				assert.Equal(t, *input[item.Order-1].Name, item.Name)
			}
		}
		assert.Len(t, seen, len(input))
	})

	t.Run("keeps raw names and categories", func(t *testing.T) {
		got := Group([]RawStep{{Name: ptr("  Row "), Reps: RepsOf(5), Category: ptr("Cardio")}})
		assert.Equal(t, Item{Name: "  Row ", Category: "Cardio", Order: 1}, got[0].Items[0])
	})

	t.Run("untyped documents", func(t *testing.T) {
		got := GroupValue([]any{
			map[string]any{"name": "Row", "reps": int64(20), "category": "Cardio"},
			"garbage",
			map[string]any{"name": 7, "reps": "20"},
		})
		require.Len(t, got, 2)
		assert.Equal(t, RepsKey(20), got[0].Reps)
		assert.Equal(t, []Item{
			{Name: "Row", Category: "Cardio", Order: 1},
			{Name: "Movement", Category: "", Order: 3},
		}, got[0].Items)
		assert.True(t, got[1].Reps.IsOther())
	})
}

func TestCompareKeys(t *testing.T) {
	assert.Negative(t, compareKeys(RepsKey(40), RepsKey(20)))
	assert.Positive(t, compareKeys(RepsKey(20), RepsKey(40)))
	assert.Negative(t, compareKeys(RepsKey(1), OtherKey))
	assert.Positive(t, compareKeys(OtherKey, RepsKey(1)))
	assert.Zero(t, compareKeys(OtherKey, OtherKey))
}

func TestRawStepJSON(t *testing.T) {
	var steps []RawStep
	err := json.Unmarshal([]byte(`[
		{"name":" Burpees ","reps":"20","category":"Bodyweight"},
		{"name":12,"reps":null},
		{},
		5
	]`), &steps)
	require.NoError(t, err)
	require.Len(t, steps, 4)

	assert.Equal(t, " Burpees ", *steps[0].Name)
	assert.Equal(t, "20", steps[0].Reps.Value())
	assert.Equal(t, "Bodyweight", *steps[0].Category)

	assert.Nil(t, steps[1].Name)
	assert.True(t, steps[1].Reps.IsSet())
	assert.Nil(t, steps[1].Reps.Value())

	assert.False(t, steps[2].Reps.IsSet())
	assert.Equal(t, RawStep{}, steps[3])

	data, err := json.Marshal(steps[2])
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func orders(items []Item) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.Order
	}
	return out
}
