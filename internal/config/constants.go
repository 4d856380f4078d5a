package config

import "time"

// Remote call retry policy.
const (
	MaxRetries   = 3
	InitialDelay = 500 * time.Millisecond
	MaxDelay     = 5 * time.Second
)

// Task defaults applied on create.
const (
	DefaultDueDays     = 7
	DefaultPoints      = 1
	DefaultTitle       = "Untitled"
	DefaultRequester   = "Unknown"
	DefaultManager     = "Unassigned"
	BacklogSprintLabel = "Backlog"
)

// Archive segmentation.
const (
	ArchiveThreshold = 20
	VisibleDoneLimit = 5
)

// Gateway modes.
const (
	GatewayMemory = "memory"
	GatewayRemote = "remote"
)

// Application settings.
const (
	AppName           = "sprintboard"
	DBFileName        = "sprintboard.db"
	EnvPrefix         = "SPRINTBOARD"
	DefaultListenAddr = ":8080"
	DefaultRemoteURL  = "http://localhost:8080"
	DefaultActorID    = "local-user"
	LocalIDPrefix     = "local-"
	DeletedLookback   = 90 * 24 * time.Hour
	DeletedListLimit  = 50
	ActiveListLimit   = 200
)
