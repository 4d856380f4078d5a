package config

// Layout constants.
const (
	// MinColumnWidth is the minimum width for a status column.
	MinColumnWidth = 18

	// CompactModeThreshold triggers compact rendering below this width.
	CompactModeThreshold = 80
)

// Display limits.
const (
	// MaxVisibleTasks limits tasks shown per column before scrolling.
	MaxVisibleTasks = 15

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "..."
)

// Input constraints.
const (
	// MaxTitleLength is the maximum task title length.
	MaxTitleLength = 100

	// MaxBriefLength is the maximum pasted brief length.
	MaxBriefLength = 2000
)
