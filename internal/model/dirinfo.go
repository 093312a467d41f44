package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// executableExts is the default PATHEXT list.
var executableExts = []string{".com", ".exe", ".bat", ".cmd", ".vbs", ".js", ".ps1", ".msc"}

// DirInfo describes what a PATH entry points at on disk.
type DirInfo struct {
	Exists      bool
	IsDir       bool
	Executables int      // Files with an executable extension
	Sample      []string // First few executable names
	ErrorMsg    string   // Error message if the directory couldn't be read
}

// InspectDir stats an expanded PATH entry and counts the executables in it.
// Entries that still contain unresolved %NAME% tokens are reported as missing.
func InspectDir(dir string) DirInfo {
	var result DirInfo

	if dir == "" {
		result.ErrorMsg = "Empty path"
		return result
	}

	info, err := os.Stat(dir)
	if err != nil {
		result.ErrorMsg = fmt.Sprintf("Could not read directory: %v", err)
		return result
	}
	result.Exists = true
	if !info.IsDir() {
		result.ErrorMsg = "Not a directory"
		return result
	}
	result.IsDir = true

	files, err := os.ReadDir(dir)
	if err != nil {
		result.ErrorMsg = fmt.Sprintf("Error reading directory: %v", err)
		return result
	}

	for _, f := range files {
		if f.IsDir() || !IsExecutableName(f.Name()) {
			continue
		}
		result.Executables++
		if len(result.Sample) < 5 {
			result.Sample = append(result.Sample, f.Name())
		}
	}

	return result
}

// IsExecutableName reports whether name carries one of the PATHEXT extensions.
func IsExecutableName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range executableExts {
		if ext == e {
			return true
		}
	}
	return false
}
