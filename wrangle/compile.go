package main

import (
	"context"
	"fmt"
	"go/token"
	"io"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/tliron/commonlog"

	"github.com/apparentlymart/insntab/emit"
	"github.com/apparentlymart/insntab/isa"
)

// pipeline runs one compile: schema, opcode assignment, lock check,
// emitters, writer and formatters, in that order. Nothing is written
// unless every step before the writer succeeds.
type pipeline struct {
	cfg *Config
	cat *isa.Catalog
	log commonlog.Logger

	// updateLock rewrites the lock file instead of checking against it.
	updateLock bool

	// dump receives a dump of the assigned table when non-nil.
	dump io.Writer
}

// dumpConfig shows every field of the table. Instruction's String method
// would hide the opcodes and parameters.
var dumpConfig = spew.ConfigState{
	Indent:                  " ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
}

type result struct {
	Table        *isa.Table
	Artifacts    []emit.Artifact
	FormatErrors []error
}

func (p *pipeline) run(ctx context.Context) (*result, error) {
	cfg := p.cfg
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p.log.Infof("loading %s", cfg.SchemaPath())
	ins, err := isa.LoadFile(cfg.SchemaPath(), p.cat)
	if err != nil {
		return nil, err
	}
	table, err := isa.Assign(ins)
	if err != nil {
		return nil, err
	}
	p.log.Infof("assigned %d opcodes", table.Len())

	if p.dump != nil {
		dumpConfig.Fdump(p.dump, table)
	}

	var lock *isa.Lock
	if path := cfg.LockPath(); path != "" {
		lock, err = isa.ReadLock(path)
		if err != nil {
			return nil, err
		}
		if lock != nil && !p.updateLock {
			if err := lock.Check(table); err != nil {
				for _, d := range lock.Diff(table) {
					p.log.Errorf("opcode drift: %s", d)
				}
				return nil, fmt.Errorf("%s: %w (run with -update-lock to accept the new numbering)", path, err)
			}
		}
	}

	arts, err := p.emit(table)
	if err != nil {
		return nil, err
	}

	out := cfg.OutputDir()
	if err := emit.WriteArtifacts(out, arts); err != nil {
		return nil, err
	}
	for _, art := range arts {
		p.log.Infof("wrote %s", filepath.Join(out, art.Name))
	}

	if path := cfg.LockPath(); path != "" && (lock == nil || p.updateLock) {
		if err := isa.WriteLock(path, isa.NewLock(table)); err != nil {
			return nil, err
		}
		p.log.Infof("wrote %s", path)
	}

	ret := &result{Table: table, Artifacts: arts}
	if cfg.Format || len(cfg.FormatCommand) > 0 {
		ret.FormatErrors = emit.Format(ctx, out, arts, emit.FormatOptions{
			Imports: cfg.Format,
			Command: cfg.FormatCommand,
			Pattern: cfg.formatPattern(),
		})
		for _, err := range ret.FormatErrors {
			p.log.Warningf("%s", err)
		}
		if len(ret.FormatErrors) == 0 {
			p.log.Info("formatting successful")
		}
	}
	return ret, nil
}

func (p *pipeline) emit(table *isa.Table) ([]emit.Artifact, error) {
	cfg := p.cfg
	source := filepath.Base(cfg.Schema)

	var arts []emit.Artifact
	if cfg.hasTarget(targetGo) {
		pkg, err := p.packageName()
		if err != nil {
			return nil, err
		}
		goArts, err := emit.Go(table, p.cat, emit.GoOptions{Package: pkg, Source: source})
		if err != nil {
			return nil, err
		}
		arts = append(arts, goArts...)
	}
	if cfg.hasTarget(targetCXX) {
		art, err := emit.CXX(table, p.cat, emit.CXXOptions{
			Name:    cfg.CXXHeader,
			Source:  source,
			Context: cfg.CXXContext,
		})
		if err != nil {
			return nil, err
		}
		arts = append(arts, art)
	}
	if cfg.hasTarget(targetDescriptor) {
		data, err := emit.Descriptor(table, p.cat)
		if err != nil {
			return nil, err
		}
		arts = append(arts, emit.Artifact{Name: cfg.Descriptor, Data: data})
	}
	return arts, nil
}

// packageName returns the configured package name, falling back on the
// name of the output directory.
func (p *pipeline) packageName() (string, error) {
	name := p.cfg.Package
	if name == "" {
		name = strings.ToLower(filepath.Base(p.cfg.OutputDir()))
	}
	if !token.IsIdentifier(name) || name == "_" {
		return "", fmt.Errorf("%q is not a valid package name; set package in %s", name, configName)
	}
	return name, nil
}
