package config

const (
	defaultConfigPath       = "~/.config/stitchbook/config.toml"
	projectConfigName       = "stitchbook.toml"
	defaultDataDir          = "~/.local/share/stitchbook"
	defaultLanguage         = "en"
	defaultSymbols          = "jp"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30
	ownerEnv                = "STITCHBOOK_OWNER"
)

// Default returns a Config populated with repository defaults. The log
// directory and owner are filled in during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Display: Display{
			Language: defaultLanguage,
			Symbols:  defaultSymbols,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
