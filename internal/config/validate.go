package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOwner(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateEditor(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOwner() error {
	if c.Owner.ID == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("owner.id is required. Set %s or edit %s (create with 'stitchbook config init')", ownerEnv, defaultPath)
	}
	return nil
}

func (c *Config) validateDisplay() error {
	if _, err := language.Parse(c.Display.Language); err != nil {
		return fmt.Errorf("display.language %q is not a valid language tag: %w", c.Display.Language, err)
	}
	if c.Display.Symbols != "jp" {
		return fmt.Errorf("display.symbols must be \"jp\", got %q", c.Display.Symbols)
	}
	return nil
}

func (c *Config) validateEditor() error {
	if c.Editor.LockTimeoutSeconds < 0 {
		return errors.New("editor.lock_timeout_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
