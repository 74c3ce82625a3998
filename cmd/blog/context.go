package main

import (
	"strings"
	"sync"

	"github.com/joho/godotenv"

	blog "github.com/goliatone/go-blog"
)

// commandContext lazily builds the module so commands like help never pay
// for configuration loading.
type commandContext struct {
	envFlag *string

	once   sync.Once
	module *blog.Module
	err    error
}

func newCommandContext(envFlag *string) *commandContext {
	return &commandContext{envFlag: envFlag}
}

func (c *commandContext) ensureModule() (*blog.Module, error) {
	c.once.Do(func() {
		envFile := ""
		if c.envFlag != nil {
			envFile = strings.TrimSpace(*c.envFlag)
		}
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				c.err = err
				return
			}
		} else {
			// Default .env is optional.
			_ = godotenv.Load()
		}

		cfg := blog.FromEnv(blog.DefaultConfig())
		c.module, c.err = blog.New(cfg, nil)
	})
	return c.module, c.err
}
