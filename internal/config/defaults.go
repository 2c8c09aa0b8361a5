package config

// Entry is a single configuration key with its default value.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns the default configuration entries.
// These seed viper's defaults and document every supported key.
func DefaultEntries() []Entry {
	defaults := DefaultConfig()
	return []Entry{
		{
			Key:         "catalog",
			Value:       defaults.Catalog,
			Description: "Default field catalog file (supports ${ENV_VAR} syntax)",
		},
		{
			Key:         "check.workers",
			Value:       defaults.Check.Workers,
			Description: "Worker goroutines for bulk validation (0 = one per CPU)",
		},
		{
			Key:         "rewrite.require_valid",
			Value:       defaults.Rewrite.RequireValid,
			Description: "Refuse to rewrite notes that fail validation",
		},
		{
			Key:         "payload.model",
			Value:       defaults.Payload.Model,
			Description: "Model named in rendered batch requests",
		},
		{
			Key:         "payload.endpoint",
			Value:       defaults.Payload.Endpoint,
			Description: "Endpoint URL in rendered batch requests",
		},
		{
			Key:         "payload.system_preamble",
			Value:       defaults.Payload.SystemPreamble,
			Description: "Text placed before the rewritten notes in the system message (empty = built-in)",
		},
		{
			Key:         "output.format",
			Value:       defaults.Output.Format,
			Description: "CLI output format: yaml or json",
		},
		{
			Key:         "log.level",
			Value:       defaults.Log.Level,
			Description: "Log level: debug, info, warn or error",
		},
	}
}

// GetDefault returns the default entry for a config key.
// Returns nil if no default exists for the key.
func GetDefault(key string) *Entry {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry
		}
	}
	return nil
}
