package config

import "github.com/Faultbox/roadgen/internal/logger"

// LoggerOptions converts the logging settings. Console output is always on.
func (l LoggingConfig) LoggerOptions() logger.Options {
	opts := logger.Options{Level: l.Level, JSON: l.JSON, Console: true}
	if l.LogFile != "" {
		opts.File = logger.DefaultFileConfig(l.LogFile)
	}
	return opts
}
