package components

import "time"

// UI timing constants
const (
	// UITickInterval is the base tick rate for animations
	UITickInterval = 100 * time.Millisecond

	// UITicksPerSecond is the animation frame rate derived from the tick interval
	UITicksPerSecond = int(time.Second / UITickInterval)

	StatsPollingInterval = 2 * time.Second
	StatsCallTimeout     = 500 * time.Millisecond
)

// Generic layout constants
const (
	PanelHeightPadding = 4
	PanelBorderPadding = 2
	PanelInnerPadding  = 4
	MinPanelHeight     = 8
	MinPanelWidth      = 40
)

// Header and footer layout constants
const (
	HeaderSeparatorMinWidth = 4
	HeaderFixedChars        = 10
	FooterGapMinWidth       = 2
)

// Log table layout constants
const (
	StampColumnWidth   = 19
	LevelColumnWidth   = 8
	ColumnGap          = 2
	MessageMinWidth    = 20
	DefaultViewportWidth = 80
)

// Alert layout constants
const (
	AlertMaxWidth = 60
)

// MBToGB converts megabytes to gigabytes
const MBToGB = 1024
