package utils

import (
	"fmt"
	"time"
)

func BoolPtr(b bool) *bool {
	return &b
}

func IntPtr(i int) *int {
	return &i
}

func StringPtr(s string) *string {
	return &s
}

func TimePtr(t time.Time) *time.Time {
	return &t
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func PtrInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

const columnPrefixFmt = "%s.%s"

// PrefixSliceOfStrings qualifies column names with a table alias for
// joined queries.
func PrefixSliceOfStrings(prefix string, input []string, ignore ...string) []string {
	out := make([]string, len(input))

inputloop:
	for i, v := range input {
		for _, ignored := range ignore {
			if v == ignored {
				continue inputloop
			}
		}

		out[i] = fmt.Sprintf(columnPrefixFmt, prefix, v)
	}
	return out
}
