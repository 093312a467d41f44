// Package audit annotates PATH entries with what they resolve to on disk and
// reports duplicates and dead directories.
package audit

import (
	"fmt"
	"os"
	"strings"

	"pathedit/internal/model"
	"pathedit/internal/pathlist"
)

// Analyzer audits PATH lists.
type Analyzer struct {
	lookup  pathlist.LookupFunc
	inspect func(dir string) model.DirInfo
}

// NewAnalyzer returns an Analyzer resolving tokens with lookup, or the
// process environment when lookup is nil.
func NewAnalyzer(lookup pathlist.LookupFunc) *Analyzer {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Analyzer{lookup: lookup, inspect: model.InspectDir}
}

// Analyze audits a single scope as read.
func (a *Analyzer) Analyze(snap pathlist.Snapshot) model.AnalysisResult {
	return a.analyze([]pathlist.Snapshot{snap})
}

// AnalyzeSession audits User then System, the order the merged PATH is
// searched in, so System entries repeating a User entry are flagged.
func (a *Analyzer) AnalyzeSession(user, system pathlist.Snapshot) model.AnalysisResult {
	return a.analyze([]pathlist.Snapshot{user, system})
}

func (a *Analyzer) analyze(snaps []pathlist.Snapshot) model.AnalysisResult {
	var result model.AnalysisResult

	for _, snap := range snaps {
		result.Scopes = append(result.Scopes, model.ScopeSummary{
			Scope:    snap.Scope,
			Encoding: snap.Encoding.String(),
			Raw:      snap.Raw(),
			Count:    len(snap.Entries),
		})
		for pos, value := range snap.Entries {
			expanded := pathlist.ExpandFunc(value, a.lookup)
			entry := model.PathEntry{
				Value:       value,
				Expanded:    expanded,
				Scope:       snap.Scope,
				Position:    pos,
				HasToken:    pathlist.HasToken(value),
				DuplicateOf: -1,
			}
			if pathlist.HasToken(expanded) {
				entry.Diagnostics = append(entry.Diagnostics, "Unresolved variable in "+expanded)
				entry.Remediation = "Define the variable or replace the token with a literal path."
				entry.Dir = model.DirInfo{ErrorMsg: "Unresolved variable"}
			} else {
				entry.Dir = a.inspect(expanded)
				switch {
				case !entry.Dir.Exists:
					entry.Diagnostics = append(entry.Diagnostics, "Directory does not exist")
					entry.Remediation = "Remove the entry or create the directory."
				case !entry.Dir.IsDir:
					entry.Diagnostics = append(entry.Diagnostics, "Not a directory")
					entry.Remediation = "PATH entries must name directories; remove the entry."
				}
			}
			result.PathEntries = append(result.PathEntries, entry)
		}
		if snap.Encoding == model.EncodingPlain && pathlist.HasToken(snap.Raw()) {
			result.Diagnostics = append(result.Diagnostics, fmt.Sprintf(
				"%s contains %%NAME%% tokens but is stored as %s; saving will store it as %s.",
				snap.Scope.Title(), model.EncodingPlain, model.EncodingExpandable))
		}
		if !snap.Encoding.IsString() {
			result.Diagnostics = append(result.Diagnostics, fmt.Sprintf(
				"%s is stored as %s; saving will replace it with a string type.",
				snap.Scope.Title(), snap.Encoding))
		}
	}

	markDuplicates(result.PathEntries, a.lookup)
	result.Diagnostics = append(result.Diagnostics, summarize(result.PathEntries)...)
	return result
}

// markDuplicates flags every entry whose compare key matches an earlier one.
// The duplicate advice replaces any disk advice: removing it fixes both.
func markDuplicates(entries []model.PathEntry, lookup pathlist.LookupFunc) {
	seen := make(map[string]int)
	for i, e := range entries {
		key := pathlist.CompareKeyFunc(e.Value, lookup)
		firstIdx, ok := seen[key]
		if !ok {
			seen[key] = i
			continue
		}
		first := entries[firstIdx]
		entries[i].IsDuplicate = true
		entries[i].DuplicateOf = firstIdx
		entries[i].Diagnostics = append(entries[i].Diagnostics, fmt.Sprintf("Duplicate of entry %d", firstIdx+1))
		if first.Scope == e.Scope {
			entries[i].Remediation = fmt.Sprintf(
				"Duplicate of entry %d (%s #%d). Remove it or run dedupe on %s.",
				firstIdx+1, first.Scope, first.Position+1, e.Scope.Title())
		} else {
			entries[i].Remediation = fmt.Sprintf(
				"Already on PATH via %s #%d, which is searched first. Remove it from one scope.",
				first.Scope, first.Position+1)
		}
	}
}

func summarize(entries []model.PathEntry) []string {
	var dups, missing, unresolved int
	for _, e := range entries {
		if e.IsDuplicate {
			dups++
		}
		switch {
		case e.Dir.ErrorMsg == "Unresolved variable":
			unresolved++
		case !e.Dir.Exists:
			missing++
		}
	}
	var out []string
	if dups > 0 {
		out = append(out, plural(dups, "duplicate entry", "duplicate entries"))
	}
	if missing > 0 {
		out = append(out, plural(missing, "missing directory", "missing directories"))
	}
	if unresolved > 0 {
		out = append(out, plural(unresolved, "entry with unresolved variables", "entries with unresolved variables"))
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

// Flags renders the status icons of entry i in a result of n entries.
func Flags(e model.PathEntry, i, n int) string {
	var b strings.Builder
	switch {
	case i == 0:
		b.WriteString(model.IconPriorityHigh)
	case i == n-1:
		b.WriteString(model.IconPriorityLow)
	default:
		b.WriteString(model.IconOK)
	}
	if e.IsDuplicate {
		b.WriteString(model.IconDuplicate)
	} else {
		b.WriteString(model.IconOK)
	}
	if !e.Dir.Exists {
		b.WriteString(model.IconMissing)
	} else {
		b.WriteString(model.IconOK)
	}
	if e.HasToken {
		b.WriteString(model.IconToken)
	} else {
		b.WriteString(model.IconOK)
	}
	return b.String()
}
