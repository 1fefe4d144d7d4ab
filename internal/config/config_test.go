package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

const minimalDB = `
database:
  host: localhost
  name: testdb
  user: testuser
`

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: minimalDB,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "testdb", cfg.Database.Name)
				assert.Equal(t, "testuser", cfg.Database.User)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: minimalDB,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.Database.PoolSize)
				assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
				assert.Equal(t, "https://grandexchange.tools/api/items", cfg.Sources.ItemsURL)
				assert.Equal(t, "https://grandexchange.tools/api/prices", cfg.Sources.PricesURL)
				assert.Equal(t, "https://grandexchange.tools/api/volumes", cfg.Sources.VolumesURL)
				assert.Equal(t, 30*time.Second, cfg.Sources.Timeout)
				assert.InDelta(t, 1.0, cfg.Sources.RateLimit.PerSecond, 1e-9)
				assert.Equal(t, RendererHTTP, cfg.Scraping.Renderer)
				assert.Equal(t, "https://oldschool.runescape.wiki", cfg.Scraping.BaseURL)
				assert.Equal(t, "/w/Food/All_food", cfg.Scraping.FoodPath)
				assert.Len(t, cfg.Scraping.Slots, len(domain.AllSlots))
				assert.Equal(t, 2*time.Second, cfg.Scraping.SlotDelay)
				assert.Equal(t, 30*time.Second, cfg.Scraping.PageTimeout)
				assert.Equal(t, "59 23 * * 3", cfg.Schedule.WeeklyCron)
				assert.Equal(t, "0 */3 * * *", cfg.Schedule.PriceCron)
				assert.Equal(t, 2*time.Hour, cfg.Schedule.StaleJobAfter)
				assert.False(t, cfg.Schedule.RunOnStartup)
				assert.Empty(t, cfg.Telemetry.Endpoint)
				assert.Equal(t, "osrs-price-tracker", cfg.Telemetry.ServiceName)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "default slots cover every slot once",
			yaml: minimalDB,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				seen := make(map[domain.Slot]bool)
				for _, s := range cfg.Scraping.Slots {
					assert.False(t, seen[s.Slot], "duplicate slot %s", s.Slot)
					seen[s.Slot] = true
				}
				for _, s := range domain.AllSlots {
					assert.True(t, seen[s], "missing slot %s", s)
				}
				assert.Equal(t, "/w/Two-handed_slot_table", cfg.Scraping.Slots[10].Path)
			},
		},
		{
			name: "env var substitution",
			yaml: minimalDB + `  password: "${TEST_DB_PASSWORD}"
`,
			envVars: map[string]string{
				"TEST_DB_PASSWORD": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Database.Password)
			},
		},
		{
			name: "missing required database.host",
			yaml: `
database:
  name: testdb
  user: testuser
`,
			wantErr: "database.host is required",
		},
		{
			name: "missing required database.name",
			yaml: `
database:
  host: localhost
  user: testuser
`,
			wantErr: "database.name is required",
		},
		{
			name: "missing required database.user",
			yaml: `
database:
  host: localhost
  name: testdb
`,
			wantErr: "database.user is required",
		},
		{
			name: "invalid renderer",
			yaml: minimalDB + `
scraping:
  renderer: curl
`,
			wantErr: `scraping.renderer must be one of: http, browser (got "curl")`,
		},
		{
			name: "unknown slot",
			yaml: minimalDB + `
scraping:
  slots:
    - slot: tail
      path: /w/Tail_slot_table
`,
			wantErr: `scraping.slots[0].slot "tail" is not a known slot`,
		},
		{
			name: "slot missing path",
			yaml: minimalDB + `
scraping:
  slots:
    - slot: head
`,
			wantErr: "scraping.slots[0].path is required",
		},
		{
			name: "relative source url",
			yaml: minimalDB + `
sources:
  items_url: /api/items
`,
			wantErr: "sources.items_url must be an absolute URL",
		},
		{
			name: "invalid cron expression",
			yaml: minimalDB + `
schedule:
  price_cron: "every three hours"
`,
			wantErr: "schedule.price_cron is invalid",
		},
		{
			name: "pool size out of range",
			yaml: minimalDB + `  pool_size: 500
`,
			wantErr: "database.pool_size must be between 1 and 100 (got 500)",
		},
		{
			name: "discord enabled without webhook",
			yaml: minimalDB + `
notifications:
  discord:
    enabled: true
`,
			wantErr: "notifications.discord.webhook_url is required when discord is enabled",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
  write_timeout: 60s
database:
  host: db.example.com
  port: 5433
  name: osrs_prod
  user: admin
  password: pass
  sslmode: require
  pool_size: 20
  query_timeout: 10s
sources:
  items_url: http://mock:8089/api/items
  prices_url: http://mock:8089/api/prices
  volumes_url: http://mock:8089/api/volumes
  timeout: 5s
  rate_limit:
    per_second: 4
    burst: 8
scraping:
  disabled: true
  renderer: browser
  base_url: http://mock:8089
  slot_delay: 0s
  page_timeout: 45s
  browser_bin: /usr/bin/chromium
  slots:
    - slot: head
      path: /w/Head_slot_table
schedule:
  weekly_cron: "0 4 * * 0"
  price_cron: "@hourly"
  run_on_startup: true
notifications:
  discord:
    enabled: true
    webhook_url: https://discord.com/api/webhooks/123
telemetry:
  endpoint: otel-collector:4317
  insecure: true
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "db.example.com", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, 20, cfg.Database.PoolSize)
				assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
				assert.Equal(t, "http://mock:8089/api/items", cfg.Sources.ItemsURL)
				assert.Equal(t, 5*time.Second, cfg.Sources.Timeout)
				assert.Equal(t, 8, cfg.Sources.RateLimit.Burst)
				assert.True(t, cfg.Scraping.Disabled)
				assert.Equal(t, RendererBrowser, cfg.Scraping.Renderer)
				assert.Equal(t, "/usr/bin/chromium", cfg.Scraping.BrowserBin)
				assert.Equal(t, 45*time.Second, cfg.Scraping.PageTimeout)
				assert.Equal(t, []SlotSource{{Slot: domain.SlotHead, Path: "/w/Head_slot_table"}}, cfg.Scraping.Slots)
				assert.Equal(t, "@hourly", cfg.Schedule.PriceCron)
				assert.True(t, cfg.Schedule.RunOnStartup)
				assert.True(t, cfg.Notifications.Discord.Enabled)
				assert.Equal(t, "https://discord.com/api/webhooks/123", cfg.Notifications.Discord.WebhookURL)
				assert.Equal(t, "otel-collector:4317", cfg.Telemetry.Endpoint)
				assert.True(t, cfg.Telemetry.Insecure)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "basic DSN",
			cfg: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				Name:     "testdb",
				User:     "testuser",
				Password: "testpass",
				SSLMode:  "disable",
			},
			want: "host=localhost port=5432 dbname=testdb user=testuser password=testpass sslmode=disable",
		},
		{
			name: "production DSN",
			cfg: DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				Name:     "tracker",
				User:     "admin",
				Password: "s3cret",
				SSLMode:  "require",
			},
			want: "host=db.example.com port=5433 dbname=tracker user=admin password=s3cret sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
