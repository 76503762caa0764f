package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tliron/commonlog"

	"github.com/apparentlymart/insntab/emit"
	"github.com/apparentlymart/insntab/isa"
)

const testSchema = `{"instructions": {
	"NOP": {"keyword": "nop", "args": {}},
	"ADD": {"keyword": "add", "args": {"dst": "reg", "src": "reg"}},
	"HALT": {"keyword": "halt", "args": {}}
}}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func testPipeline(t *testing.T, dir, config string) *pipeline {
	t.Helper()
	path := filepath.Join(dir, configName)
	writeFile(t, path, config)
	cfg, err := loadConfig(path, false)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	return &pipeline{
		cfg: cfg,
		cat: isa.DefaultCatalog(),
		log: commonlog.GetLogger("wrangle.test"),
	}
}

func TestPipelineAllTargets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "instructions.json"), testSchema)
	p := testPipeline(t, dir, `
output = "gen/ops"
targets = ["go", "cxx", "descriptor"]
lock = "opcodes.lock"
`)
	var dump bytes.Buffer
	p.dump = &dump

	res, err := p.run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Table.Len() != 3 {
		t.Errorf("table has %d entries", res.Table.Len())
	}
	for _, want := range []string{
		`Keyword: (string) (len=4) "halt"`,
		`Opcode: (isa.Opcode) 2`,
		`Tag: (isa.Tag) (len=3) "reg"`,
	} {
		if !strings.Contains(dump.String(), want) {
			t.Errorf("dump lacks %s:\n%s", want, dump.String())
		}
	}
	if strings.Contains(dump.String(), `HALT ("halt")`) {
		t.Errorf("dump used the String method:\n%s", dump.String())
	}

	for _, name := range []string{"opcodes.go", "params.go", "dispatch.go", "instructions.hxx", "instructions.cbor"} {
		if _, err := os.Stat(filepath.Join(dir, "gen", "ops", name)); err != nil {
			t.Errorf("artifact %s: %v", name, err)
		}
	}

	// The package name falls back on the output directory.
	src, err := os.ReadFile(filepath.Join(dir, "gen", "ops", "opcodes.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(src, []byte("\npackage ops\n")) {
		t.Errorf("unexpected package clause:\n%s", src)
	}
	if !bytes.Contains(src, []byte("from instructions.json. DO NOT EDIT.")) {
		t.Errorf("unexpected header:\n%s", src)
	}

	data, err := os.ReadFile(filepath.Join(dir, "gen", "ops", "instructions.cbor"))
	if err != nil {
		t.Fatal(err)
	}
	desc, err := emit.DecodeDescriptor(data)
	if err != nil {
		t.Fatalf("DecodeDescriptor: %v", err)
	}
	if len(desc.Instructions) != 3 || desc.Instructions[2].Keyword != "halt" {
		t.Errorf("descriptor = %+v", desc)
	}

	lock, err := isa.ReadLock(filepath.Join(dir, "opcodes.lock"))
	if err != nil || lock == nil {
		t.Fatalf("lock was not written: %v", err)
	}
	if len(lock.Opcodes) != 3 {
		t.Errorf("lock = %+v", lock.Opcodes)
	}
}

func TestPipelineLockDrift(t *testing.T) {
	dir := t.TempDir()
	schema := filepath.Join(dir, "instructions.json")
	writeFile(t, schema, testSchema)
	p := testPipeline(t, dir, `
package = "ops"
output = "out"
lock = "opcodes.lock"
`)
	if _, err := p.run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	before, err := os.ReadFile(filepath.Join(dir, "out", "opcodes.go"))
	if err != nil {
		t.Fatal(err)
	}

	// Removing NOP renumbers everything after it.
	writeFile(t, schema, `{
		"ADD": {"keyword": "add", "args": {"dst": "reg", "src": "reg"}},
		"HALT": {"keyword": "halt", "args": {}}
	}`)
	_, err = p.run(context.Background())
	var drift *isa.OpcodeDriftError
	if !errors.As(err, &drift) {
		t.Fatalf("error = %v, want *isa.OpcodeDriftError", err)
	}
	if len(drift.Drift) != 3 {
		t.Errorf("drift = %v", drift.Drift)
	}

	after, err := os.ReadFile(filepath.Join(dir, "out", "opcodes.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("artifacts were rewritten despite the drift")
	}

	p.updateLock = true
	if _, err := p.run(context.Background()); err != nil {
		t.Fatalf("run with updateLock: %v", err)
	}
	lock, err := isa.ReadLock(filepath.Join(dir, "opcodes.lock"))
	if err != nil {
		t.Fatal(err)
	}
	if len(lock.Opcodes) != 2 || lock.Opcodes[0].ID != "ADD" || lock.Opcodes[0].Value != 0 {
		t.Errorf("lock = %+v", lock.Opcodes)
	}
}

func TestPipelineSchemaErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "instructions.json"), `{"0": {"keyword": "add", "args": {"dst": "u64"}}}`)
	p := testPipeline(t, dir, `
package = "ops"
output = "out"
`)
	_, err := p.run(context.Background())
	var unknown *isa.UnknownTypeTagError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want *isa.UnknownTypeTagError", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(err) {
		t.Errorf("output directory exists after a failed compile")
	}
}

func TestPipelineFormatFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "instructions.json"), testSchema)
	p := testPipeline(t, dir, `
package = "ops"
output = "out"
targets = ["go", "cxx", "descriptor"]
format-command = ["`+filepath.Join(dir, "no-such-formatter")+`", "-i"]
`)
	res, err := p.run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Without format-pattern the command only sees the C++ header.
	if len(res.FormatErrors) != 1 {
		t.Fatalf("format errors = %v, want one", res.FormatErrors)
	}
	var fe *emit.FormatError
	if !errors.As(res.FormatErrors[0], &fe) || fe.Name != "instructions.hxx" {
		t.Errorf("format error = %v, want one for instructions.hxx", res.FormatErrors[0])
	}

	for _, art := range res.Artifacts {
		got, err := os.ReadFile(filepath.Join(dir, "out", art.Name))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, art.Data) {
			t.Errorf("%s differs from the emitted artifact", art.Name)
		}
	}
}

func TestPipelineBadPackageName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "instructions.json"), testSchema)
	p := testPipeline(t, dir, `output = "my-ops"`)
	if _, err := p.run(context.Background()); err == nil || !strings.Contains(err.Error(), "package name") {
		t.Errorf("error = %v, want invalid package name", err)
	}
}

func TestParseArgs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configName)
	writeFile(t, path, `
schema = "isa/instructions.yaml"
package = "vm"
targets = ["go"]
format = true
`)

	cfg, opts, err := parseArgs([]string{"-config", path, "-targets", "go, cxx", "-update-lock"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if !opts.updateLock || opts.dump {
		t.Errorf("options = %+v", *opts)
	}
	if cfg.Package != "vm" || !cfg.Format {
		t.Errorf("config values lost: %+v", *cfg)
	}
	if len(cfg.Targets) != 2 || cfg.Targets[1] != "cxx" {
		t.Errorf("targets = %q", cfg.Targets)
	}
	if want := filepath.Join(dir, "isa", "instructions.yaml"); cfg.SchemaPath() != want {
		t.Errorf("schema path = %s, want %s", cfg.SchemaPath(), want)
	}

	cfg, _, err = parseArgs([]string{"-config", path, "-format=false", "-package", "other"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.Format || cfg.Package != "other" {
		t.Errorf("flags did not override the file: %+v", *cfg)
	}
}

func TestParseArgsErrors(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := parseArgs([]string{"-config", filepath.Join(dir, "missing.toml")}, io.Discard); err == nil {
		t.Error("expected an error for a missing config file named on the command line")
	}

	bad := filepath.Join(dir, "bad.toml")
	writeFile(t, bad, `schemas = "typo.json"`)
	if _, _, err := parseArgs([]string{"-config", bad}, io.Discard); err == nil || !strings.Contains(err.Error(), "schemas") {
		t.Errorf("error = %v, want unknown key", err)
	}

	if _, _, err := parseArgs([]string{"stray"}, io.Discard); err == nil {
		t.Error("expected an error for positional arguments")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := defaultConfig(t.TempDir())
	if err := cfg.validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
	cfg.Targets = []string{"go", "rust"}
	if err := cfg.validate(); err == nil {
		t.Error("expected an error for an unknown target")
	}
}
