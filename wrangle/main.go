// Command wrangle compiles an instruction schema into the opcode tables,
// parameter records, callback declarations and dispatch routine of a
// bytecode interpreter.
//
// It is normally run from a go:generate directive next to a wrangle.toml:
//
//	//go:generate go run github.com/apparentlymart/insntab/wrangle
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/apparentlymart/insntab/isa"

	_ "github.com/tliron/commonlog/simple"
)

type options struct {
	configPath string
	updateLock bool
	dump       bool
	verbose    bool
}

func main() {
	cfg, opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	verbosity := 0
	if opts.verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)
	log := commonlog.GetLogger("wrangle")

	p := &pipeline{
		cfg:        cfg,
		cat:        isa.DefaultCatalog(),
		log:        log,
		updateLock: opts.updateLock,
	}
	if opts.dump {
		p.dump = os.Stdout
	}

	if _, err := p.run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs loads the config file and applies any flags the user set on top
// of it.
func parseArgs(args []string, stderr io.Writer) (*Config, *options, error) {
	fs := flag.NewFlagSet("wrangle", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", configName, "Configuration file")
	fs.BoolVar(&opts.updateLock, "update-lock", false, "Rewrite the opcode lock instead of checking against it")
	fs.BoolVar(&opts.dump, "dump", false, "Dump the assigned instruction table to stdout")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output")

	schema := fs.String("schema", "", "Instruction schema (JSON or YAML)")
	output := fs.String("o", "", "Output directory")
	pkg := fs.String("package", "", "Package name of the generated Go code")
	targets := fs.String("targets", "", "Comma-separated targets: go, cxx, descriptor")
	lock := fs.String("lock", "", "Opcode lock file")
	format := fs.Bool("format", false, "Run goimports over the generated Go code")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: wrangle [options]\n\n")
		fmt.Fprintf(stderr, "Generates instruction tables and dispatch code from a schema.\n")
		fmt.Fprintf(stderr, "Settings come from %s unless overridden by flags.\n\n", configName)
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	// An explicitly named config file must exist.
	cfg, err := loadConfig(opts.configPath, !set["config"])
	if err != nil {
		return nil, nil, err
	}

	// Paths given on the command line are relative to the working
	// directory, not to the config file.
	if set["schema"] {
		cfg.Schema, err = absPath(*schema)
	}
	if err == nil && set["o"] {
		cfg.Output, err = absPath(*output)
	}
	if err == nil && set["lock"] {
		cfg.Lock, err = absPath(*lock)
	}
	if err != nil {
		return nil, nil, err
	}
	if set["package"] {
		cfg.Package = *pkg
	}
	if set["targets"] {
		cfg.Targets = nil
		for _, t := range strings.Split(*targets, ",") {
			if t = strings.TrimSpace(t); t != "" {
				cfg.Targets = append(cfg.Targets, t)
			}
		}
	}
	if set["format"] {
		cfg.Format = *format
	}
	return cfg, opts, nil
}
