package main

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"stitchbook/internal/config"
	"stitchbook/internal/logging"
	"stitchbook/internal/store"
	"stitchbook/internal/tracker"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withService opens the logger and store for one command and runs fn with
// the tracker service and the configured owner. Old log files are pruned on
// the way.
func (c *commandContext) withService(cmd *cobra.Command, fn func(svc *tracker.Service, owner string) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	logging.PruneLogs(cmd.Context(), logger, cfg.Paths.LogDir, cfg.Logging.RetentionDays, cfg.LogPath(time.Now()))

	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(tracker.NewFromConfig(cfg, st, logger), cfg.Owner.ID)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
