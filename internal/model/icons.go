package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconPriorityHigh = "¹" // First entry searched
	IconPriorityLow  = "¶" // Last entry searched
	IconDuplicate    = "≈" // Same compare key as an earlier entry
	IconMissing      = "✗" // Directory does not exist
	IconToken        = "%" // Contains %NAME% tokens
	IconOK           = " " // Space (OK - no icon to reduce noise)
	IconSelected     = "●"
	IconDirty        = "*"
)
