package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/cran-montage/cranweb/config"
	"github.com/cran-montage/cranweb/internal/storage"
	"github.com/cran-montage/cranweb/internal/telegram"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// BusProvider provides the in-process event bus used for
// session-change notifications
type BusProvider interface {
	Bus() EventBus.Bus
}

// StorageProvider provides the media object store
type StorageProvider interface {
	Storage() *storage.Service
}

// RelayProvider provides the Telegram contact relay
type RelayProvider interface {
	Relay() *telegram.Client
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	BusProvider
	StorageProvider
	RelayProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
