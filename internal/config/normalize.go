package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOwner()
	c.normalizeDisplay()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeOwner() {
	c.Owner.ID = strings.TrimSpace(c.Owner.ID)
	if c.Owner.ID != "" {
		return
	}
	if value, ok := os.LookupEnv(ownerEnv); ok && strings.TrimSpace(value) != "" {
		c.Owner.ID = strings.TrimSpace(value)
		return
	}
	if value, ok := os.LookupEnv("USER"); ok {
		c.Owner.ID = strings.TrimSpace(value)
	}
}

func (c *Config) normalizeDisplay() {
	c.Display.Language = strings.TrimSpace(c.Display.Language)
	if c.Display.Language == "" {
		c.Display.Language = defaultLanguage
	}
	c.Display.Symbols = strings.ToLower(strings.TrimSpace(c.Display.Symbols))
	if c.Display.Symbols == "" {
		c.Display.Symbols = defaultSymbols
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "":
		c.Logging.Format = defaultLogFormat
	case "text":
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
