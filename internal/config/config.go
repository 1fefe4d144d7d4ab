// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Sources       SourcesConfig       `yaml:"sources"`
	Scraping      ScrapingConfig      `yaml:"scraping"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	Name         string        `yaml:"name"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password"`
	SSLMode      string        `yaml:"sslmode"`
	PoolSize     int           `yaml:"pool_size"`
	QueryTimeout time.Duration `yaml:"query_timeout"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// SourcesConfig defines the Grand Exchange pricing API endpoints.
type SourcesConfig struct {
	ItemsURL   string          `yaml:"items_url"`
	PricesURL  string          `yaml:"prices_url"`
	VolumesURL string          `yaml:"volumes_url"`
	Timeout    time.Duration   `yaml:"timeout"`
	UserAgent  string          `yaml:"user_agent"`
	RateLimit  RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines a token bucket for outbound fetches.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// ScrapingConfig defines wiki table acquisition.
type ScrapingConfig struct {
	Disabled      bool            `yaml:"disabled"`
	Renderer      string          `yaml:"renderer"` // http, browser
	BaseURL       string          `yaml:"base_url"`
	FoodPath      string          `yaml:"food_path"`
	Slots         []SlotSource    `yaml:"slots"`
	SlotDelay     time.Duration   `yaml:"slot_delay"`
	PageTimeout   time.Duration   `yaml:"page_timeout"`
	UserAgent     string          `yaml:"user_agent"`
	TableSelector string          `yaml:"table_selector"`
	BrowserBin    string          `yaml:"browser_bin"`
	RateLimit     RateLimitConfig `yaml:"rate_limit"`
}

// SlotSource maps an equipment slot to its wiki table page.
type SlotSource struct {
	Slot domain.Slot `yaml:"slot"`
	Path string      `yaml:"path"`
}

// ScheduleConfig defines the cron cadence of the sync jobs.
type ScheduleConfig struct {
	WeeklyCron    string        `yaml:"weekly_cron"`
	PriceCron     string        `yaml:"price_cron"`
	RunOnStartup  bool          `yaml:"run_on_startup"`
	StaleJobAfter time.Duration `yaml:"stale_job_after"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// TelemetryConfig defines OpenTelemetry export. An empty endpoint disables it.
type TelemetryConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	Insecure       bool          `yaml:"insecure"`
	ServiceName    string        `yaml:"service_name"`
	MetricInterval time.Duration `yaml:"metric_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Renderer values.
const (
	RendererHTTP    = "http"
	RendererBrowser = "browser"
)

// DefaultSlots returns the wiki slot table page for every equipment slot.
func DefaultSlots() []SlotSource {
	return []SlotSource{
		{Slot: domain.SlotAmmunition, Path: "/w/Ammunition_slot_table"},
		{Slot: domain.SlotBody, Path: "/w/Body_slot_table"},
		{Slot: domain.SlotCape, Path: "/w/Cape_slot_table"},
		{Slot: domain.SlotFeet, Path: "/w/Feet_slot_table"},
		{Slot: domain.SlotHands, Path: "/w/Hands_slot_table"},
		{Slot: domain.SlotHead, Path: "/w/Head_slot_table"},
		{Slot: domain.SlotLegs, Path: "/w/Legs_slot_table"},
		{Slot: domain.SlotNeck, Path: "/w/Neck_slot_table"},
		{Slot: domain.SlotRing, Path: "/w/Ring_slot_table"},
		{Slot: domain.SlotShield, Path: "/w/Shield_slot_table"},
		{Slot: domain.SlotTwoHanded, Path: "/w/Two-handed_slot_table"},
		{Slot: domain.SlotWeapon, Path: "/w/Weapon_slot_table"},
	}
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applySourcesDefaults(&cfg.Sources)
	applyScrapingDefaults(&cfg.Scraping)
	applyScheduleDefaults(&cfg.Schedule)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
	if d.QueryTimeout == 0 {
		d.QueryTimeout = 5 * time.Second
	}
}

func applySourcesDefaults(s *SourcesConfig) {
	if s.ItemsURL == "" {
		s.ItemsURL = "https://grandexchange.tools/api/items"
	}
	if s.PricesURL == "" {
		s.PricesURL = "https://grandexchange.tools/api/prices"
	}
	if s.VolumesURL == "" {
		s.VolumesURL = "https://grandexchange.tools/api/volumes"
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if s.UserAgent == "" {
		s.UserAgent = "osrs-price-tracker"
	}
	applyRateLimitDefaults(&s.RateLimit, 1, 3)
}

func applyScrapingDefaults(s *ScrapingConfig) {
	if s.Renderer == "" {
		s.Renderer = RendererHTTP
	}
	if s.BaseURL == "" {
		s.BaseURL = "https://oldschool.runescape.wiki"
	}
	if s.FoodPath == "" {
		s.FoodPath = "/w/Food/All_food"
	}
	if len(s.Slots) == 0 {
		s.Slots = DefaultSlots()
	}
	if s.SlotDelay == 0 {
		s.SlotDelay = 2 * time.Second
	}
	if s.PageTimeout == 0 {
		s.PageTimeout = 30 * time.Second
	}
	if s.UserAgent == "" {
		s.UserAgent = "osrs-price-tracker (+https://github.com/donaldgifford/osrs-price-tracker)"
	}
	applyRateLimitDefaults(&s.RateLimit, 0.5, 1)
}

func applyRateLimitDefaults(r *RateLimitConfig, perSecond float64, burst int) {
	if r.PerSecond == 0 {
		r.PerSecond = perSecond
	}
	if r.Burst == 0 {
		r.Burst = burst
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.WeeklyCron == "" {
		s.WeeklyCron = "59 23 * * 3"
	}
	if s.PriceCron == "" {
		s.PriceCron = "0 */3 * * *"
	}
	if s.StaleJobAfter == 0 {
		s.StaleJobAfter = 2 * time.Hour
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "osrs-price-tracker"
	}
	if t.MetricInterval == 0 {
		t.MetricInterval = 60 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	if cfg.Database.PoolSize < 1 || cfg.Database.PoolSize > 100 {
		errs = append(errs, fmt.Errorf("database.pool_size must be between 1 and 100 (got %d)", cfg.Database.PoolSize))
	}

	for name, raw := range map[string]string{
		"sources.items_url":   cfg.Sources.ItemsURL,
		"sources.prices_url":  cfg.Sources.PricesURL,
		"sources.volumes_url": cfg.Sources.VolumesURL,
		"scraping.base_url":   cfg.Scraping.BaseURL,
	} {
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL (got %q)", name, raw))
		}
	}

	switch cfg.Scraping.Renderer {
	case RendererHTTP, RendererBrowser:
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"scraping.renderer must be one of: http, browser (got %q)",
				cfg.Scraping.Renderer,
			),
		)
	}

	for i, s := range cfg.Scraping.Slots {
		if !s.Slot.Valid() {
			errs = append(errs, fmt.Errorf("scraping.slots[%d].slot %q is not a known slot", i, s.Slot))
		}
		if s.Path == "" {
			errs = append(errs, fmt.Errorf("scraping.slots[%d].path is required", i))
		}
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, spec := range map[string]string{
		"schedule.weekly_cron": cfg.Schedule.WeeklyCron,
		"schedule.price_cron":  cfg.Schedule.PriceCron,
	} {
		if _, err := parser.Parse(spec); err != nil {
			errs = append(errs, fmt.Errorf("%s is invalid: %w", name, err))
		}
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(
			errs,
			fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"),
		)
	}

	return errors.Join(errs...)
}
