package pathlist

import (
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// fold applies Unicode case folding. A Caser is stateful, so one is built
// per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// CompareKey is the normalized form of entry used to detect duplicates:
// expanded, forward slashes turned into backslashes, trimmed, case-folded,
// with trailing backslashes removed. It is never displayed or stored.
func CompareKey(entry string) string {
	return CompareKeyFunc(entry, os.LookupEnv)
}

// CompareKeyFunc is CompareKey with an explicit environment lookup.
func CompareKeyFunc(entry string, lookup LookupFunc) string {
	key := ExpandFunc(entry, lookup)
	key = strings.ReplaceAll(key, "/", `\`)
	key = fold(strings.TrimSpace(key))
	return strings.TrimRight(key, `\`)
}

// Dedupe keeps the first entry for each compare key, preserving order and
// the original text of kept entries.
func Dedupe(entries []string) []string {
	return DedupeFunc(entries, os.LookupEnv)
}

// DedupeFunc is Dedupe with an explicit environment lookup.
func DedupeFunc(entries []string, lookup LookupFunc) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		key := CompareKeyFunc(entry, lookup)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry)
	}
	return out
}

// Sort orders entries in place by case-folded raw text. Slashes and tokens
// are compared as written. The sort is stable.
func Sort(entries []string) {
	keys := make(map[string]string, len(entries))
	for _, e := range entries {
		if _, ok := keys[e]; !ok {
			keys[e] = fold(e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return keys[entries[i]] < keys[entries[j]]
	})
}
