package config

import (
	"flag"
)

// parses CLI flags for the server
func ParseServerFlags(args []string) Flags {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	path := fs.String("config", "", "path to a YAML or TOML config file")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{ConfigPath: *path}
}

// parses CLI flags for the catalog command
func ParseCatalogFlags(args []string) Flags {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	format := fs.String("format", "markdown", "output format: markdown or json")
	plain := fs.Bool("plain", false, "print raw markdown even on a terminal")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{Format: *format, Plain: *plain}
}
