package chipper

const (
	// DefaultCategory is used for new rows when the caller has no category yet.
	DefaultCategory = "Bodyweight"

	// fallbackReps is the last resort when a scheme has no entries at all.
	fallbackReps = 10
)

// RepScheme is an ordered, non-increasing list of rep targets, indexed by step position.
type RepScheme []int

var defaultRepScheme = RepScheme{50, 50, 40, 40, 30, 30, 20, 20, 10}

// DefaultRepScheme returns a copy of the scheme used to pre-fill chipper steps.
func DefaultRepScheme() RepScheme {
	return append(RepScheme(nil), defaultRepScheme...)
}

// Target returns the rep target for the step at index. Indexes past the end
// of the scheme are clamped to its last entry. The lookup falls back in order:
// the clamped entry, the last entry, then a literal 10.
func (s RepScheme) Target(index int) int {
	if index < 0 {
		index = 0
	}
	if index > len(s)-1 {
		index = len(s) - 1
	}
	if reps, ok := s.lookup(index); ok {
		return reps
	}
	if reps, ok := s.lookup(len(s) - 1); ok {
		return reps
	}
	return fallbackReps
}

func (s RepScheme) lookup(index int) (int, bool) {
	if index < 0 || index >= len(s) {
		return 0, false
	}
	return s[index], true
}

// RepTarget is Target on the default scheme.
func RepTarget(index int) int {
	return defaultRepScheme.Target(index)
}

// NewStep returns a blank step seeded from the default scheme, used to
// initialise a new editable row. An empty category becomes DefaultCategory.
func NewStep(index int, category string) Step {
	if category == "" {
		category = DefaultCategory
	}
	return Step{
		Name:     "",
		Reps:     RepTarget(index),
		Category: category,
	}
}
