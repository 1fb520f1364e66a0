package main

import (
	"context"
	"flag"
	"github.com/peterbourgon/ff/v3"
	"github.com/shimmeringbee/logwrap"
	"os"
	"path/filepath"
)

const DefaultDirectoryPermissions = 0700

type Directories struct {
	Config string
	Log    string
}

type Settings struct {
	Directories Directories
	Script      string
	Demo        bool
}

func parseSettings(ctx context.Context, l logwrap.Logger, args []string) (Settings, error) {
	fs := flag.NewFlagSet("remote", flag.ContinueOnError)

	defaultConfigDirectory, err := defaultDirectory("config")
	if err != nil {
		l.LogError(ctx, "Failed to construct default configuration directory.", logwrap.Err(err))
		return Settings{}, err
	}

	defaultLogDirectory, err := defaultDirectory("log")
	if err != nil {
		l.LogError(ctx, "Failed to construct default log directory.", logwrap.Err(err))
		return Settings{}, err
	}

	configDirectory := fs.String("config-directory", defaultConfigDirectory, "location of configuration files")
	logDirectory := fs.String("log-directory", defaultLogDirectory, "location of log files")
	script := fs.String("script", "", "run only this script file instead of the scripts directory")
	demo := fs.Bool("demo", false, "run the built in demonstration and exit")

	if err := ff.Parse(fs, args, ff.WithEnvVarNoPrefix()); err != nil {
		l.LogError(ctx, "Failed to parse environment/command line arguments.", logwrap.Err(err))
		return Settings{}, err
	}

	return Settings{
		Directories: Directories{
			Config: *configDirectory,
			Log:    *logDirectory,
		},
		Script: *script,
		Demo:   *demo,
	}, nil
}

func ensureDirectories(d Directories) error {
	for _, dir := range []string{d.Config, d.Log} {
		if err := os.MkdirAll(dir, DefaultDirectoryPermissions); err != nil {
			return err
		}
	}

	return nil
}

func defaultDirectory(t string) (string, error) {
	if configDir, err := os.UserConfigDir(); err != nil {
		return "", err
	} else {
		return filepath.Join(configDir, "shimmeringbee", "remote", t), nil
	}
}
