package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# adledger configuration
# Every value can be overridden by the environment variable named beside it.

sqlite:
  # path: .adledger/action_log.db (or set ADLEDGER_DB_PATH)

approval:
  required: true                  # APPROVAL_REQUIRED
  auto_approve_bid_change_pct: 10 # AUTO_APPROVE_BID_CHANGE_PCT
  compliance_mode: false          # AD_GRANTS_MODE
  compliance_max_cpc: 2.0         # AD_GRANTS_MAX_CPC

spend_cap:
  max_daily: 50.0                 # MAX_DAILY_SPEND

mutator:
  mode: read_only                 # read_only | outbox (ADLEDGER_MUTATOR)
  # outbox_path: .adledger/outbox.jsonl

log:
  level: warn                     # ADLEDGER_LOG_LEVEL
  format: console                 # console | json
`

// WriteDefault creates the .adledger directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
