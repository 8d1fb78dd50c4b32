package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/matcheat/internal/flagx"
	"github.com/dmitrijs2005/matcheat/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals are
// timex.Duration, so "3s" and integer nanoseconds both work. Absent keys
// keep the current value.
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	SessionFile         *string         `json:"session_file"`
}

// parseJson overlays cfg with the JSON file named by -c or -config.
// Read or unmarshal errors panic.
func parseJson(cfg *Config, osArgs []string) {
	jsonConfigFile := flagx.ConfigFile(osArgs)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionFile != nil {
		cfg.SessionFile = *jc.SessionFile
	}
}
