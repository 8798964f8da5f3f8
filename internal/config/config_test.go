package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/pkg/types"
)

const minimal = `
[domains.rooms]
shape = "vertical"
open_time = "08:00"
close_time = "20:00"
slot_minutes = 30

[[domains.rooms.resources]]
id = "room-a"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"ai_tool", "rooms", "vehicle"}, cfg.DomainNames())

	domains, err := cfg.DomainConfigs()
	require.NoError(t, err)
	require.Len(t, domains, 3)

	ai := domains[0]
	assert.Equal(t, "ai_tool", ai.Grid.Domain)
	assert.True(t, ai.Grid.CollapseResourceAxis)
	assert.Equal(t, domain.Policy{MaxResources: 2, MaxSpanDays: 6}, ai.Policy)
	require.Len(t, ai.Grid.Periods, 2)
	assert.Equal(t, domain.Period{Label: "Afternoon", Start: "13:00", End: "17:00"}, ai.Grid.Periods[1])

	rooms := domains[1]
	assert.Equal(t, domain.Policy{MaxResources: domain.UnboundedResourceCap, MaxSpanDays: domain.UnboundedSpanDays}, rooms.Policy)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, rooms.Grid.ClosedWeekdays)
	assert.Equal(t, time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), rooms.Grid.Holidays[2])
	assert.True(t, rooms.Grid.Resources[2].AdminOnly)
	assert.Equal(t, "Europe/Moscow", rooms.Grid.Location.String())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, NotifierNone, cfg.Notifier.Transport)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	domains, err := cfg.DomainConfigs()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("08:00"), domains[0].Grid.OpenTime)
	assert.Equal(t, "room-a", domains[0].Grid.Resources[0].Name)
	assert.Equal(t, time.UTC, domains[0].Grid.Location)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SMC_DB_PASSWORD", "from-env")
	t.Setenv("SMC_ADMIN_PASSCODE", "letmein")

	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "letmein", cfg.Session.AdminPasscode)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "broken toml", content: "[server", wantErr: ErrParseConfig},
		{name: "unknown key", content: minimal + "\n[server]\nhttp_prot = 1\n", wantErr: ErrParseConfig},
		{name: "no domains", content: "[server]\nhttp_port = 8080\n", wantErr: ErrInvalidConfig},
		{name: "unknown cache backend", content: minimal + "\n[cache]\nbackend = \"memcached\"\n", wantErr: ErrInvalidConfig},
		{name: "redis without addr", content: minimal + "\n[cache]\nbackend = \"redis\"\n", wantErr: ErrInvalidConfig},
		{name: "http notifier without url", content: minimal + "\n[notifier]\ntransport = \"http\"\n", wantErr: ErrInvalidConfig},
		{
			name: "unknown shape",
			content: `
[domains.rooms]
shape = "diagonal"
open_time = "08:00"
close_time = "20:00"
slot_minutes = 30
[[domains.rooms.resources]]
id = "room-a"
`,
			wantErr: ErrInvalidConfig,
		},
		{
			name: "collapsed axis on vertical grid",
			content: `
[domains.ai]
shape = "vertical"
collapse_resource_axis = true
[[domains.ai.periods]]
label = "Morning"
start = "09:00"
end = "13:00"
[[domains.ai.resources]]
id = "ai-1"
`,
			wantErr: ErrInvalidConfig,
		},
		{
			name: "bad weekday",
			content: `
[domains.rooms]
shape = "vertical"
open_time = "08:00"
close_time = "20:00"
slot_minutes = 30
closed_weekdays = ["funday"]
[[domains.rooms.resources]]
id = "room-a"
`,
			wantErr: ErrInvalidConfig,
		},
		{
			name: "layout required",
			content: `
[domains.rooms]
shape = "vertical"
open_time = "08:00"
close_time = "20:00"
slot_minutes = 30
require_layout = true
[[domains.rooms.resources]]
id = "room-a"
`,
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
