package main

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/filter"
	"github.com/shimmeringbee/logwrap/impl/golog"
	"github.com/shimmeringbee/logwrap/impl/tee"
	"github.com/shimmeringbee/remote/config"
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"log"
	"os"
	"path/filepath"
)

var logLevels = map[string]logwrap.LogLevel{
	"panic": logwrap.Panic,
	"fatal": logwrap.Fatal,
	"error": logwrap.Error,
	"warn":  logwrap.Warn,
	"info":  logwrap.Info,
	"debug": logwrap.Debug,
	"trace": logwrap.Trace,
}

func loadLoggingConfigurations(dir string) ([]config.LoggingConfig, error) {
	return loadJSONConfigurations(dir, "logging", func(name string) config.LoggingConfig {
		return config.LoggingConfig{Name: name}
	})
}

func configureLogging(cfgDir string, logDir string, l logwrap.Logger) (logwrap.Logger, io.Closer, error) {
	logCfgs, err := loadLoggingConfigurations(cfgDir)
	if err != nil {
		return l, nopCloser{}, err
	}

	var impls []logwrap.Impl
	var closers multiCloser

	for _, cfg := range logCfgs {
		var logWriter io.Writer
		var baseCfg config.BaseLogging

		switch lCfg := cfg.Config.(type) {
		case *config.StdoutLogging:
			logWriter = os.Stderr
			baseCfg = lCfg.BaseLogging
		case *config.FileLogging:
			baseCfg = lCfg.BaseLogging

			lj := &lumberjack.Logger{
				Filename:   filepath.Join(logDir, lCfg.Filename),
				MaxSize:    lCfg.Size,
				MaxBackups: lCfg.Count,
				Compress:   lCfg.Compress,
			}

			closers = append(closers, lj)
			logWriter = lj
		default:
			return l, closers, fmt.Errorf("unsupported logging configuration '%s' of type %s", cfg.Name, cfg.Type)
		}

		impl, err := constructFilter(baseCfg, golog.Wrap(log.New(logWriter, "", log.LstdFlags)))
		if err != nil {
			return l, closers, fmt.Errorf("failed to construct filter for logging '%s': %w", cfg.Name, err)
		}

		impls = append(impls, impl)

		l.LogInfo(context.Background(), "Constructed logging.", logwrap.Datum("name", cfg.Name), logwrap.Datum("type", cfg.Type))
	}

	if len(impls) == 0 {
		l.LogWarn(context.Background(), "No logging configurations loaded, continuing with stderr only.")
		return l, closers, nil
	}

	l.LogDebug(context.Background(), "Handing over to new logging configuration.")

	return logwrap.New(tee.Tee(impls...)), closers, nil
}

func constructFilter(cfg config.BaseLogging, base logwrap.Impl) (logwrap.Impl, error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}

	level, found := logLevels[cfg.Level]
	if !found {
		return base, fmt.Errorf("unknown log level '%s'", cfg.Level)
	}

	return filter.Filter(base, func(message logwrap.Message) bool {
		if message.Level > level {
			return false
		}

		if len(cfg.Subsystems) == 0 {
			return true
		}

		found := false

		for _, filterSubsystem := range cfg.Subsystems {
			if filterSubsystem == message.Source {
				found = true
				break
			}
		}

		return cfg.NegateSubsystems != found
	}), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var firstErr error

	for _, c := range m {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
