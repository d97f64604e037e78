package chipper

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawStep is one chipper step as submitted by an editing form or read from a
// stored workout. Every field is optional and none of them is trusted.
type RawStep struct {
	Name     *string
	Reps     Reps
	Category *string
}

// Step is a canonical chipper step ready to be persisted. Reps is always a positive integer.
type Step struct {
	Name     string `firestore:"name" json:"name" yaml:"name"`
	Reps     int    `firestore:"reps" json:"reps" yaml:"reps"`
	Category string `firestore:"category" json:"category" yaml:"category"`
}

// Item is a step as shown inside a bucket. Order is the 1-based position of
// the step in the submitted list.
type Item struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Order    int    `json:"order"`
}

// Bucket groups the items sharing a rep count, or the shared Other key.
type Bucket struct {
	Reps  BucketKey `json:"reps"`
	Items []Item    `json:"items"`
}

// BucketKey is either a positive rep count or the catch-all Other key.
// The zero value is OtherKey.
type BucketKey struct {
	reps int
}

// OtherKey collects every step whose reps are not a usable number.
var OtherKey = BucketKey{}

// RepsKey returns the key of the bucket for reps. Non-positive counts map to OtherKey.
func RepsKey(reps int) BucketKey {
	if reps <= 0 {
		return OtherKey
	}
	return BucketKey{reps: reps}
}

func (k BucketKey) IsOther() bool {
	return k.reps <= 0
}

// Reps returns the rep count, or 0 for OtherKey.
func (k BucketKey) Reps() int {
	return k.reps
}

func (k BucketKey) String() string {
	if k.IsOther() {
		return "Other"
	}
	return strconv.Itoa(k.reps)
}

func (k BucketKey) MarshalJSON() ([]byte, error) {
	if k.IsOther() {
		return []byte(`"Other"`), nil
	}
	return []byte(strconv.Itoa(k.reps)), nil
}

func (k *BucketKey) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*k = OtherKey
	if n, ok := RepsOf(v).Count(); ok {
		*k = RepsKey(n)
	}
	return nil
}

type rawStepJSON struct {
	Name     *string `json:"name,omitempty"`
	Reps     *Reps   `json:"reps,omitempty"`
	Category *string `json:"category,omitempty"`
}

func (s RawStep) MarshalJSON() ([]byte, error) {
	out := rawStepJSON{Name: s.Name, Category: s.Category}
	if s.Reps.IsSet() {
		out.Reps = &s.Reps
	}
	return json.Marshal(out)
}

// UnmarshalJSON never rejects a well-formed document: fields of the wrong
// type are dropped, and a non-object step decodes to an empty RawStep.
func (s *RawStep) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	m, _ := v.(map[string]any)
	*s = RawStepFromMap(m)
	return nil
}

// RawStepFromMap reads a step from a loosely typed document, such as
// the decoded form of a Firestore array element.
func RawStepFromMap(m map[string]any) RawStep {
	var step RawStep
	if m == nil {
		return step
	}
	if name, ok := m["name"].(string); ok {
		step.Name = &name
	}
	if reps, ok := m["reps"]; ok {
		step.Reps = RepsOf(reps)
	}
	if category, ok := m["category"].(string); ok {
		step.Category = &category
	}
	return step
}

// RawStepsFrom converts an untyped step list. It reports false when v is not a list.
func RawStepsFrom(v any) ([]RawStep, bool) {
	switch list := v.(type) {
	case []RawStep:
		return list, true
	case []map[string]any:
		steps := make([]RawStep, len(list))
		for i, m := range list {
			steps[i] = RawStepFromMap(m)
		}
		return steps, true
	case []any:
		steps := make([]RawStep, len(list))
		for i, elem := range list {
			switch e := elem.(type) {
			case map[string]any:
				steps[i] = RawStepFromMap(e)
			case RawStep:
				steps[i] = e
			}
		}
		return steps, true
	default:
		return nil, false
	}
}

func trimmedName(name *string) string {
	if name == nil {
		return ""
	}
	return strings.TrimSpace(*name)
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
