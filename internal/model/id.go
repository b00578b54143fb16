package model

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidID is returned when an ID cannot be parsed.
	ErrInvalidID = errors.New("invalid ID format")

	// idRegex matches task IDs like 7, 07, #7
	idRegex = regexp.MustCompile(`^#?(\d+)$`)
)

// ParseID parses a single task ID. A leading "#" is accepted.
// Returns ErrInvalidID if the format is invalid or the number is zero.
func ParseID(s string) (uint32, error) {
	matches := idRegex.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return 0, fmt.Errorf("%w: %q is not a valid task ID", ErrInvalidID, s)
	}

	n, err := strconv.ParseUint(matches[1], 10, 32)
	if err != nil || n == 0 || n > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %q has invalid number", ErrInvalidID, s)
	}
	return uint32(n), nil
}

// ParseIDs parses IDs from one or more arguments, each of which may hold a
// comma-separated list ("1,2", "3"). Duplicates are removed, keeping the
// first occurrence.
func ParseIDs(args ...string) ([]uint32, error) {
	var ids []uint32
	seen := make(map[uint32]bool)

	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := ParseID(part)
			if err != nil {
				return nil, err
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids, nil
}

// FormatIDs joins ids with ", " for display.
func FormatIDs(ids []uint32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ", ")
}
