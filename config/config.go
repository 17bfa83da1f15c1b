package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/cran-montage/cranweb/pkg/common"
)

type SysConfig struct {
	Appname  string `yaml:"appname" json:"appname"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// StorageConfig controls the disk-backed media buckets and how public
// URLs for stored objects are built.
type StorageConfig struct {
	// PublicBaseURL is the URL prefix under which bucket objects are
	// served, e.g. https://cdn.example.com/storage.
	PublicBaseURL string `yaml:"public_base_url" json:"public_base_url"`
	// MaxVideoSize and MaxImageSize are upload ceilings in bytes.
	MaxVideoSize int64 `yaml:"max_video_size" json:"max_video_size"`
	MaxImageSize int64 `yaml:"max_image_size" json:"max_image_size"`
}

// TelegramConfig holds the outbound contact-relay bot credentials.
type TelegramConfig struct {
	APIBaseURL string `yaml:"api_base_url" json:"api_base_url"`
	BotToken   string `yaml:"bot_token" json:"bot_token"`
	ChatID     string `yaml:"chat_id" json:"chat_id"`
}

type AppConfig struct {
	System   SysConfig      `yaml:"system" json:"system"`
	Web      WebConfig      `yaml:"web" json:"web"`
	Database DBConfig       `yaml:"database" json:"database"`
	Logger   LogConfig      `yaml:"logger" json:"logger"`
	Storage  StorageConfig  `yaml:"storage" json:"storage"`
	Telegram TelegramConfig `yaml:"telegram" json:"telegram"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appname:  "CranWeb",
		Location: "Europe/Moscow",
		Workdir:  "/var/cranweb",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-0731-1203-xxtx-0f568ac9da37",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "cranweb",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/cranweb/cranweb.log",
	},
	Storage: StorageConfig{
		PublicBaseURL: "http://127.0.0.1:1816/storage",
		MaxVideoSize:  100 << 20,
		MaxImageSize:  10 << 20,
	},
	Telegram: TelegramConfig{
		APIBaseURL: "https://api.telegram.org",
	},
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) GetStorageDir() string {
	return filepath.Join(c.System.Workdir, "storage")
}

func setEnvValue(name string, f func(v string)) {
	if v := os.Getenv(name); v != "" {
		f(v)
	}
}

func setEnvInt64Value(name string, f func(v int64)) {
	if v := os.Getenv(name); v != "" {
		f(cast.ToInt64(v))
	}
}

// WriteDefaultConfig writes the built-in defaults as a YAML file, a
// starting point for a new deployment.
func WriteDefaultConfig(cfile string) error {
	data, err := yaml.Marshal(DefaultAppConfig)
	if err != nil {
		return err
	}
	return os.WriteFile(cfile, data, 0o644)
}

// LoadConfig reads the YAML configuration file and applies CRANWEB_*
// environment overrides on top. A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	defaults := *DefaultAppConfig
	cfg := &defaults
	if common.FileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err != nil {
			panic(err)
		}
		cfg = new(AppConfig)
		if err := yaml.Unmarshal(data, cfg); err != nil {
			panic(err)
		}
	}

	setEnvValue("CRANWEB_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("CRANWEB_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = cast.ToBool(v) })
	setEnvValue("CRANWEB_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvInt64Value("CRANWEB_WEB_PORT", func(v int64) { cfg.Web.Port = int(v) })
	setEnvValue("CRANWEB_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("CRANWEB_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("CRANWEB_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvInt64Value("CRANWEB_DB_PORT", func(v int64) { cfg.Database.Port = int(v) })
	setEnvValue("CRANWEB_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("CRANWEB_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("CRANWEB_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("CRANWEB_STORAGE_BASE_URL", func(v string) { cfg.Storage.PublicBaseURL = v })
	setEnvInt64Value("CRANWEB_STORAGE_MAX_VIDEO_SIZE", func(v int64) { cfg.Storage.MaxVideoSize = v })
	setEnvInt64Value("CRANWEB_STORAGE_MAX_IMAGE_SIZE", func(v int64) { cfg.Storage.MaxImageSize = v })
	setEnvValue("CRANWEB_TELEGRAM_BOT_TOKEN", func(v string) { cfg.Telegram.BotToken = v })
	setEnvValue("CRANWEB_TELEGRAM_CHAT_ID", func(v string) { cfg.Telegram.ChatID = v })

	return cfg
}
