package api

import (
	"strings"

	"github.com/Mr-LMN/CircuitsAPP/chipper"
)

type categoryVocabulary struct {
	canonical map[string]string
	fallback  string
}

// NewCategoryVocabulary returns a sanitizer that maps a category onto one of
// categories, ignoring case and surrounding spaces. Unknown and missing
// categories become fallback. With no categories, any non-blank value is kept.
func NewCategoryVocabulary(categories []string, fallback string) chipper.CategorySanitizer {
	v := &categoryVocabulary{
		canonical: make(map[string]string, len(categories)),
		fallback:  fallback,
	}
	for _, c := range categories {
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if _, ok := v.canonical[key]; c != "" && !ok {
			v.canonical[key] = c
		}
	}
	return v
}

func (v *categoryVocabulary) SanitizeCategory(raw *string) string {
	if raw == nil {
		return v.fallback
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return v.fallback
	}
	if len(v.canonical) == 0 {
		return value
	}
	if c, ok := v.canonical[strings.ToLower(value)]; ok {
		return c
	}
	return v.fallback
}
