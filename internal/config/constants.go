package config

import "time"

// app constants
const (
	AppName        = "logviewer"
	AppDescription = "terminal viewer for developer log API entries"

	Version = "0.3.0"
)

// file constants
const (
	ConfigFileName = "logviewer.yaml"
	ConfigDirName  = ".config/logviewer"
	EnvFileName    = ".env"
	EnvPrefix      = "LOGVIEWER"
)

// logging constants
const (
	LogLevel  = "info"
	LogFormat = "console"
)

// server constants
const (
	DefaultServerURL = "http://localhost:8000"
	DefaultTimeout   = 10 * time.Second

	UserIDsPath = "/user_ids"
	LogsPath    = "/logs"

	HeaderAccept   = "Accept"
	HeaderUsername = "dev-username"
	HeaderPassword = "dev-password"
	HeaderUserID   = "user-id"
	MediaTypeJSON  = "application/json"
)

// display constants
const (
	DefaultTimezone = "Europe/Berlin"
	DefaultClamp    = 3

	DateLayout = "02.01.2006"
	TimeLayout = "15:04:05"
)

// bus constants
const (
	BusBuffer = 32
)

// watch constants
const (
	WatchDebounce = 300 * time.Millisecond
)

// telemetry constants
const (
	DefaultEnvironment = "development"
	FlushTimeout       = 2 * time.Second
)
