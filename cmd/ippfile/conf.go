/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Program configuration
 */

package main

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"

	"github.com/OpenPrinting/cups-sub002/internal/ipplog"
)

// ConfFileName is the default configuration file name this tool looks
// for in the current directory when no -conf option is given.
const ConfFileName = "ippfile.conf"

// Configuration holds this tool's settings.
type Configuration struct {
	Group      string // GROUP tag an input file without one starts in
	WithGroups bool   // whether totext output carries GROUP directives
	LogLevel   string // "error", "info" or "debug"
}

// Conf holds the active configuration, seeded with built-in defaults a
// settings file may override.
var Conf = Configuration{
	Group:      "operation-attributes-tag",
	WithGroups: true,
	LogLevel:   "info",
}

// ConfLoad overlays Conf with settings read from path through ini.v1.
// A missing file is not an error: the built-in defaults above apply.
func ConfLoad(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("conf %s: %s", path, err)
	}

	sec := cfg.Section("ippfile")
	if k, err := sec.GetKey("group"); err == nil {
		Conf.Group = k.String()
	}
	if k, err := sec.GetKey("with-groups"); err == nil {
		if b, err := k.Bool(); err == nil {
			Conf.WithGroups = b
		}
	}
	if k, err := sec.GetKey("log-level"); err == nil {
		Conf.LogLevel = k.String()
	}

	return nil
}

// confLogLevel maps Conf.LogLevel to an ipplog.Level mask.
func confLogLevel() ipplog.Level {
	switch Conf.LogLevel {
	case "debug":
		return ipplog.LevelAll
	case "error":
		return ipplog.LevelError
	default:
		return ipplog.LevelError | ipplog.LevelInfo
	}
}
