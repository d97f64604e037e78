package chipper

// CategorySanitizer maps a raw, possibly absent, category to the app's canonical value.
type CategorySanitizer interface {
	SanitizeCategory(raw *string) string
}

// CategorySanitizerFunc adapts a plain function to CategorySanitizer.
type CategorySanitizerFunc func(raw *string) string

func (f CategorySanitizerFunc) SanitizeCategory(raw *string) string {
	return f(raw)
}

// IdentityCategory keeps the raw category as is, with an empty string when absent.
// Normalize uses it when no sanitizer is given.
var IdentityCategory CategorySanitizer = CategorySanitizerFunc(valueOrEmpty)

// Normalize turns raw steps into canonical steps, in the same order. Reps that
// are not a positive number fall back to the default scheme at the step's index.
func Normalize(steps []RawStep, sanitizer CategorySanitizer) []Step {
	if sanitizer == nil {
		sanitizer = IdentityCategory
	}
	out := make([]Step, len(steps))
	for i, step := range steps {
		reps, ok := step.Reps.Count()
		if !ok {
			reps = RepTarget(i)
		}
		out[i] = Step{
			Name:     trimmedName(step.Name),
			Reps:     reps,
			Category: sanitizer.SanitizeCategory(step.Category),
		}
	}
	return out
}

// Incomplete reports whether a step still needs input: a blank name, or reps
// that are not a finite number above zero.
func Incomplete(step RawStep) bool {
	return trimmedName(step.Name) == "" || !step.Reps.Valid()
}

// IncompleteRows returns the 0-based indexes of the incomplete steps.
func IncompleteRows(steps []RawStep) []int {
	rows := make([]int, 0)
	for i, step := range steps {
		if Incomplete(step) {
			rows = append(rows, i)
		}
	}
	return rows
}
