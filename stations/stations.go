// Package stations reshapes the per-station participant codes stored on a
// session into a fixed-length list.
package stations

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// MaxStations bounds the station count read from stored documents.
const MaxStations = 1000

// Normalize returns one code list per station. The station count is
// totalStations when positive, otherwise it is inferred from the input: the
// length of a list, or the highest numeric key of a map plus one.
// A count above MaxStations is treated as malformed and gives no stations.
func Normalize(input any, totalStations int) [][]string {
	length := totalStations
	if length <= 0 {
		length = inferLength(input)
	}
	if length <= 0 || length > MaxStations {
		return [][]string{}
	}

	out := make([][]string, length)
	for i := range out {
		out[i] = sanitizeCodes(stationAt(input, i))
	}
	return out
}

// Serialize returns the storage form of the assignments: station index to a
// set of codes.
func Serialize(input any, totalStations int) map[string]map[string]bool {
	normalized := Normalize(input, totalStations)
	out := make(map[string]map[string]bool, len(normalized))
	for i, codes := range normalized {
		set := make(map[string]bool, len(codes))
		for _, code := range codes {
			set[code] = true
		}
		out[strconv.Itoa(i)] = set
	}
	return out
}

func inferLength(input any) int {
	if list, ok := asList(input); ok {
		return len(list)
	}
	m, ok := asMap(input)
	if !ok {
		return 0
	}
	highest := -1
	for key := range m {
		n, err := strconv.Atoi(leadingDigits(key))
		if err != nil || n < 0 {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest + 1
}

// leadingDigits keeps an optional sign and the digits that follow it, so "3a" reads as 3.
func leadingDigits(key string) string {
	key = strings.TrimSpace(key)
	end := 0
	if end < len(key) && (key[end] == '-' || key[end] == '+') {
		end++
	}
	for end < len(key) && key[end] >= '0' && key[end] <= '9' {
		end++
	}
	return key[:end]
}

func stationAt(input any, index int) any {
	if list, ok := asList(input); ok {
		if index < len(list) {
			return list[index]
		}
		return nil
	}
	if m, ok := asMap(input); ok {
		return m[strconv.Itoa(index)]
	}
	return nil
}

func sanitizeCodes(value any) []string {
	codes := make([]string, 0)
	if list, ok := asList(value); ok {
		for _, elem := range list {
			code, ok := codeString(elem)
			if !ok {
				continue
			}
			if code = strings.ToUpper(code); code != "" {
				codes = append(codes, code)
			}
		}
		return codes
	}
	if m, ok := asMap(value); ok {
		for _, code := range sortedKeys(m) {
			if code != "" && truthy(m[code]) {
				codes = append(codes, strings.ToUpper(code))
			}
		}
	}
	return codes
}

func codeString(v any) (string, bool) {
	switch c := v.(type) {
	case string:
		return c, true
	case int, int32, int64, uint, uint32, uint64:
		return fmt.Sprint(c), true
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(c), 'f', -1, 32), true
	default:
		return "", false
	}
}

func truthy(v any) bool {
	switch f := v.(type) {
	case nil:
		return false
	case bool:
		return f
	case string:
		return f != ""
	case float64:
		return f != 0 && !math.IsNaN(f)
	case int:
		return f != 0
	case int64:
		return f != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0 && !math.IsNaN(rv.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return !rv.IsZero()
	default:
		return true
	}
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]bool:
		out := make(map[string]any, len(m))
		for k, flag := range m {
			out[k] = flag
		}
		return out, true
	case map[string]map[string]bool:
		out := make(map[string]any, len(m))
		for k, set := range m {
			out[k] = set
		}
		return out, true
	default:
		return nil, false
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
