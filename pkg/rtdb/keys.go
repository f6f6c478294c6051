package rtdb

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Join builds a normalized path from segments, skipping empty ones.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// NormalizePath trims slashes and rejects empty or illegal segments.
func NormalizePath(path string) (string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return "", nil
	}
	for _, seg := range strings.Split(path, "/") {
		if err := ValidateKey(seg); err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return path, nil
}

func ValidateKey(key string) error {
	if key == "" || strings.ContainsAny(key, ".#$[]/") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func integerKey(key string) (int64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') || key[0] == '+' {
		return 0, false
	}
	if key[0] == '-' && (len(key) == 1 || key[1] == '0') {
		return 0, false
	}
	v, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CompareKeys orders keys the way the hosted database orders by key: integer
// keys first in numeric order, then every other key lexicographically.
func CompareKeys(a, b string) int {
	ai, aInt := integerKey(a)
	bi, bInt := integerKey(b)
	switch {
	case aInt && bInt:
		if ai < bi {
			return -1
		}
		if ai > bi {
			return 1
		}
		return 0
	case aInt:
		return -1
	case bInt:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func SortKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		return CompareKeys(keys[i], keys[j]) < 0
	})
}

// ApplyQuery filters and limits keys that are already sorted with SortKeys.
func ApplyQuery(keys []string, q Query) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if q.StartAt != "" && CompareKeys(k, q.StartAt) < 0 {
			continue
		}
		if q.EndAt != "" && CompareKeys(k, q.EndAt) > 0 {
			continue
		}
		if q.EndBefore != "" && CompareKeys(k, q.EndBefore) >= 0 {
			continue
		}
		out = append(out, k)
	}
	if q.LimitToFirst > 0 && len(out) > q.LimitToFirst {
		out = out[:q.LimitToFirst]
	}
	if q.LimitToLast > 0 && len(out) > q.LimitToLast {
		out = out[len(out)-q.LimitToLast:]
	}
	return out
}
