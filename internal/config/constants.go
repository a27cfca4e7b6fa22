// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "go_4_elearning"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort      = ":8080"
	DefaultLogLevel        = "info"
	DefaultDatabaseDriver  = "postgres"
	DefaultAccessTokenTTL  = 24 * time.Hour
	DefaultMailerType      = "log"
	DefaultCodeMaxAttempts = 10
)
