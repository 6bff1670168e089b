package room

import (
	"fmt"
	"strconv"
	"strings"
)

// Flag is a user-placed marker.
type Flag struct {
	Name           string
	Color          int
	SecondaryColor int
	X              int
	Y              int
}

// ParseFlags decodes the compact flag list "name~color~secondary~x~y|...".
func ParseFlags(s string) ([]Flag, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "|")
	flags := make([]Flag, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		fields := strings.Split(part, "~")
		if len(fields) != 5 {
			return nil, fmt.Errorf("invalid flag %q: expected 5 fields, got %d", part, len(fields))
		}
		var nums [4]int
		for i, f := range fields[1:] {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("invalid flag %q: %w", part, err)
			}
			nums[i] = n
		}
		flags = append(flags, Flag{
			Name:           fields[0],
			Color:          nums[0],
			SecondaryColor: nums[1],
			X:              nums[2],
			Y:              nums[3],
		})
	}
	return flags, nil
}
