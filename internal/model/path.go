package model

import (
	"fmt"
	"strings"

	"pathedit/internal/errors"
)

// Scope identifies which PATH value is being edited.
type Scope int

const (
	ScopeUser Scope = iota
	ScopeSystem
)

// Scopes lists every scope in the order PATH is searched after a save
// (User entries first, then System).
var Scopes = []Scope{ScopeUser, ScopeSystem}

func (s Scope) String() string {
	switch s {
	case ScopeUser:
		return "User"
	case ScopeSystem:
		return "System"
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// ParseScope accepts "user" or "system" in any case.
func ParseScope(name string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "user":
		return ScopeUser, nil
	case "system":
		return ScopeSystem, nil
	}
	return 0, errors.Newf(errors.ErrInvalidArg, "unknown scope %q (want user or system)", name)
}

// Title is the panel heading for the scope.
func (s Scope) Title() string {
	if s == ScopeSystem {
		return "System PATH (HKLM)"
	}
	return "User PATH (HKCU)"
}

// RequiresElevation reports whether writing the scope needs administrator rights.
func (s Scope) RequiresElevation() bool {
	return s == ScopeSystem
}

// MarshalText lets scopes appear by name in JSON output.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ValueEncoding mirrors the registry value type number a PATH value was read
// as or will be written as. Only Plain and Expandable are ever written; other
// numbers are carried through from a read until the next save.
type ValueEncoding uint32

const (
	EncodingPlain      ValueEncoding = 1 // REG_SZ
	EncodingExpandable ValueEncoding = 2 // REG_EXPAND_SZ
)

func (e ValueEncoding) String() string {
	switch e {
	case EncodingPlain:
		return "REG_SZ"
	case EncodingExpandable:
		return "REG_EXPAND_SZ"
	}
	return fmt.Sprintf("REG_TYPE(%d)", uint32(e))
}

// IsString reports whether e is one of the two string subtypes.
func (e ValueEncoding) IsString() bool {
	return e == EncodingPlain || e == EncodingExpandable
}

// PathEntry represents a single directory in a PATH value, annotated by the audit.
type PathEntry struct {
	Value       string // The directory as stored (e.g., %SystemRoot%\System32)
	Expanded    string // Value with %NAME% tokens resolved
	Scope       Scope  // Which PATH value the entry belongs to
	Position    int    // Index within its scope's list
	HasToken    bool   // True if Value contains a %NAME% token
	IsDuplicate bool   // True if an earlier entry has the same compare key
	DuplicateOf int    // Index (in PathEntries) of the first occurrence
	Dir         DirInfo
	Diagnostics []string
	Remediation string // Advice on how to fix the entry
}

// ScopeSummary describes one scope's registry value.
type ScopeSummary struct {
	Scope    Scope
	Encoding string
	Raw      string
	Count    int
}

// AnalysisResult contains the audited entries of one or more scopes.
type AnalysisResult struct {
	Scopes      []ScopeSummary
	PathEntries []PathEntry
	Diagnostics []string
}
