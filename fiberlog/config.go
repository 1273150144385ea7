package fiberlog

import "github.com/sirupsen/logrus"

// Config is config for middleware
type Config struct {
	Logger *logrus.Logger
	Tags   []string

	// MaxBodyLen тела длиннее обрезаются в логе, 0 - defaultMaxBodyLen
	MaxBodyLen int
	// SkipPaths запросы с этими путями не логируются
	SkipPaths  []string
}

const defaultMaxBodyLen = 2048

// ConfigDefault is the default config
var ConfigDefault Config = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
	MaxBodyLen: defaultMaxBodyLen,
}

func (c Config) bodyLimit() int {
	if c.MaxBodyLen <= 0 {
		return defaultMaxBodyLen
	}
	return c.MaxBodyLen
}

func (c Config) skipped(path string) bool {
	for _, p := range c.SkipPaths {
		if p == path {
			return true
		}
	}
	return false
}
