package classify

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const maxSuggestionDistance = 2

var knownTypes = func() []string {
	names := make([]string, 0, len(categoryByType))
	for name := range categoryByType {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// KnownTypes returns the sorted list of recognised node types.
func KnownTypes() []string {
	return append([]string(nil), knownTypes...)
}

// Suggest returns the recognised type closest to rawType when it is within a
// couple of edits, which makes typos such as "chekbox" easy to diagnose.
func Suggest(rawType string) (string, bool) {
	if rawType == "" || Recognized(rawType) {
		return "", false
	}
	candidate := strings.ToLower(strings.TrimSpace(rawType))
	if Recognized(candidate) {
		return candidate, true
	}

	best, bestDistance := "", maxSuggestionDistance+1
	for _, name := range knownTypes {
		distance := levenshtein.ComputeDistance(candidate, name)
		if distance < bestDistance {
			best, bestDistance = name, distance
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
