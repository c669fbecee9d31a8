package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Write       bool
	Plain       bool
	Select      []string
	LookupDirs  []string
	Instruction string
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	pflag.BoolVarP(&cfg.Write, "write", "w", false, "Write committed contents to disk (review only by default).")
	pflag.BoolVar(&cfg.Plain, "plain", false, "Disable the interactive review UI; commit everything and print a summary.")
	pflag.StringSliceVarP(&cfg.Select, "select", "s", []string{}, "Commit only the edits for the named file paths (plain mode).")
	pflag.StringSliceVarP(&cfg.LookupDirs, "lookup-dir", "l", []string{}, "Directories to look for referenced files (default: current directory).")
	pflag.StringVarP(&cfg.Instruction, "instruction", "i", "", "Instruction text recorded on the session.")

	pflag.Usage = func() {
		fmt.Println("Usage: editflow [flags]")
		fmt.Println("\nParse AI output from stdin (pipe) or the clipboard into reviewable file edits.")
		fmt.Println("\nExample: pbpaste | editflow -w")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if len(cfg.Select) > 0 && !cfg.Plain {
		return nil, fmt.Errorf("error: --select requires --plain")
	}

	return cfg, nil
}
