package chipper

import (
	"cmp"
	"slices"
	"strings"
)

// PlaceholderName replaces blank step names in grouped output.
const PlaceholderName = "Movement"

type bucket struct {
	key   BucketKey
	items []Item
}

// Group buckets steps by rounded rep count. Buckets are ordered by descending
// reps, with the Other bucket, which holds every step without usable reps, last.
// Items keep their submission order inside a bucket.
func Group(steps []RawStep) []Bucket {
	buckets := make([]*bucket, 0)
	lookup := make(map[BucketKey]*bucket)

	for i, step := range steps {
		key := OtherKey
		if reps, ok := step.Reps.Count(); ok {
			key = RepsKey(reps)
		}
		b, ok := lookup[key]
		if !ok {
			b = &bucket{key: key}
			lookup[key] = b
			buckets = append(buckets, b)
		}
		b.items = append(b.items, Item{
			Name:     valueOrEmpty(step.Name),
			Category: valueOrEmpty(step.Category),
			Order:    i + 1,
		})
	}

	slices.SortStableFunc(buckets, func(a, b *bucket) int {
		return compareKeys(a.key, b.key)
	})

	out := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		items := make([]Item, len(b.items))
		for i, item := range b.items {
			if item.Name == "" {
				item.Name = PlaceholderName
			}
			items[i] = item
		}
		out = append(out, Bucket{Reps: b.key, Items: items})
	}
	return out
}

// GroupValue is Group for untyped input. Anything that is not a list gives no buckets.
func GroupValue(v any) []Bucket {
	steps, ok := RawStepsFrom(v)
	if !ok {
		return []Bucket{}
	}
	return Group(steps)
}

func compareKeys(a, b BucketKey) int {
	switch {
	case !a.IsOther() && !b.IsOther():
		return cmp.Compare(b.Reps(), a.Reps())
	case !a.IsOther():
		return -1
	case !b.IsOther():
		return 1
	default:
		return strings.Compare(a.String(), b.String())
	}
}
