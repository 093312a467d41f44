package model

// Version is overridden at build time with -ldflags "-X pathedit/internal/model.Version=..."
var Version = "0.3.0"

// Release coordinates used by the update check.
const (
	ReleaseOwner      = "pathedit"
	ReleaseRepository = "pathedit"
)
