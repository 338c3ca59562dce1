package main

import (
	"fmt"
	"os"

	"codeberg.org/algorave/errhandler/internal/config"
	"codeberg.org/algorave/errhandler/presets"
	"codeberg.org/algorave/errhandler/registry"
	"github.com/charmbracelet/x/term"
)

const defaultWidth = 100

func main() {
	flags := config.ParseCatalogFlags(os.Args[1:])

	reg := registry.New()
	presets.Register(reg)

	if err := run(flags, reg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags config.Flags, reg *registry.Registry) error {
	doc := newDocument(reg)

	switch flags.Format {
	case "json":
		return writeJSON(os.Stdout, doc)
	case "markdown":
	default:
		return fmt.Errorf("unknown format %q", flags.Format)
	}

	md := markdown(doc)

	fd := os.Stdout.Fd()
	if flags.Plain || !term.IsTerminal(fd) {
		_, err := fmt.Fprint(os.Stdout, md)
		return err
	}

	width := defaultWidth
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		width = w
	}

	out, err := renderTerminal(md, width)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(os.Stdout, out)
	return err
}
