package params

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

var ErrInvalid = errors.New("invalid query parameter")

// Float parses ?key=... as a finite float. Absent or empty yields nil.
func Float(q url.Values, key string) (*float64, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, key, s)
	}
	return &f, nil
}

// RequiredFloat is Float for parameters that must be present.
func RequiredFloat(q url.Values, key string) (float64, error) {
	f, err := Float(q, key)
	if err != nil {
		return 0, err
	}
	if f == nil {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalid, key)
	}
	return *f, nil
}

// Int parses ?key=... as an integer. Absent or empty yields nil.
func Int(q url.Values, key string) (*int, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, key, s)
	}
	return &n, nil
}

// ParseLimit reads ?limit=... leniently: missing, malformed or non-positive
// values fall back to def and anything above maxLimit is clamped.
func ParseLimit(q url.Values, def, maxLimit int) int {
	limitStr := strings.TrimSpace(q.Get("limit"))
	if limitStr == "" {
		return def
	}
	limit, err := strconv.Atoi(limitStr)
	switch {
	case err != nil, limit <= 0:
		return def
	case limit > maxLimit:
		return maxLimit
	default:
		return limit
	}
}
