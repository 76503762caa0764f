package isa

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Lock records the opcode every instruction had when the lock was last
// written, so that a schema edit which renumbers existing instructions can
// be caught before it breaks previously assembled programs.
type Lock struct {
	Opcodes []LockedOpcode `toml:"opcode"`
}

type LockedOpcode struct {
	ID      string `toml:"id"`
	Keyword string `toml:"keyword"`
	Value   int    `toml:"value"`
}

// Drift describes one locked instruction whose opcode is no longer what the
// lock says. Now is -1 when the instruction was removed.
type Drift struct {
	ID      string
	Keyword string
	Was     int
	Now     int
}

func (d Drift) String() string {
	if d.Now < 0 {
		return fmt.Sprintf("%s (%s): removed, was %d", d.ID, d.Keyword, d.Was)
	}
	return fmt.Sprintf("%s (%s): %d -> %d", d.ID, d.Keyword, d.Was, d.Now)
}

// NewLock captures the opcodes of the given table.
func NewLock(t *Table) *Lock {
	ret := &Lock{Opcodes: make([]LockedOpcode, 0, t.Len())}
	for _, ins := range t.Instructions {
		ret.Opcodes = append(ret.Opcodes, LockedOpcode{
			ID:      ins.ID,
			Keyword: ins.Keyword,
			Value:   int(ins.Opcode),
		})
	}
	return ret
}

// ReadLock reads a lock file. A missing file is not an error and produces
// a nil lock.
func ReadLock(filename string) (*Lock, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var l Lock
	if err := toml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", filename, err)
	}
	return &l, nil
}

// WriteLock writes l to filename, replacing any existing lock.
func WriteLock(filename string, l *Lock) error {
	var buf bytes.Buffer
	buf.WriteString("# Opcode assignments. Generated by wrangle; edit the schema instead.\n\n")
	if err := toml.NewEncoder(&buf).Encode(l); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), ".lock-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}

// Diff compares the table against the lock. Instructions that are new since
// the lock was written are not drift.
func (l *Lock) Diff(t *Table) []Drift {
	if l == nil {
		return nil
	}

	byID := make(map[string]*Instruction, t.Len())
	for _, ins := range t.Instructions {
		byID[ins.ID] = ins
	}

	var ret []Drift
	for _, locked := range l.Opcodes {
		ins, ok := byID[locked.ID]
		switch {
		case !ok:
			ret = append(ret, Drift{ID: locked.ID, Keyword: locked.Keyword, Was: locked.Value, Now: -1})
		case int(ins.Opcode) != locked.Value:
			ret = append(ret, Drift{ID: locked.ID, Keyword: ins.Keyword, Was: locked.Value, Now: int(ins.Opcode)})
		}
	}
	return ret
}

// Check returns an *OpcodeDriftError if the table has drifted from the
// lock.
func (l *Lock) Check(t *Table) error {
	if drift := l.Diff(t); len(drift) > 0 {
		return &OpcodeDriftError{Drift: drift}
	}
	return nil
}
