package emit

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"
)

// FormatOptions selects the formatting passes Format runs over artifacts
// that have already been written.
type FormatOptions struct {
	// Imports runs goimports over the Go artifacts.
	Imports bool

	// Command is an external formatter and its leading arguments. The path
	// of a scratch copy of the artifact is appended, and the command is
	// expected to rewrite that file in place, e.g. clang-format -i.
	Command []string

	// Pattern limits Command to artifacts whose names match it, as in
	// filepath.Match. Empty matches everything.
	Pattern string
}

// FormatError reports a formatter that failed on one artifact. The artifact
// itself is left exactly as it was written.
type FormatError struct {
	Name   string
	Err    error
	Output string
}

func (e *FormatError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("formatting %s: %s", e.Name, e.Err)
	}
	return fmt.Sprintf("formatting %s: %s\n%s", e.Name, e.Err, e.Output)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Format runs the selected formatters over the artifacts already written to
// dir. A formatter only ever works on a copy, and its output replaces the
// artifact only when it succeeds. Failures don't stop the remaining
// artifacts from being formatted; they are all returned.
func Format(ctx context.Context, dir string, arts []Artifact, opts FormatOptions) []error {
	var errs []error
	for _, art := range arts {
		filename := filepath.Join(dir, art.Name)

		if opts.Imports && strings.HasSuffix(art.Name, ".go") {
			if err := formatImports(filename); err != nil {
				errs = append(errs, &FormatError{Name: art.Name, Err: err})
			}
		}

		if len(opts.Command) > 0 && matchPattern(opts.Pattern, art.Name) {
			out, err := formatCommand(ctx, filename, opts.Command)
			if err != nil {
				errs = append(errs, &FormatError{Name: art.Name, Err: err, Output: out})
			}
		}
	}
	return errs
}

func formatImports(filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	out, err := imports.Process(filename, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return err
	}
	if bytes.Equal(out, src) {
		return nil
	}
	return writeFile(filename, out)
}

func formatCommand(ctx context.Context, filename string, command []string) (string, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}

	scratch, err := os.MkdirTemp("", "wrangle-format-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(scratch)

	// Keep the base name so formatters that pick a style by extension
	// still see the right one.
	tmp := filepath.Join(scratch, filepath.Base(filename))
	if err := os.WriteFile(tmp, src, 0644); err != nil {
		return "", err
	}

	args := append(append([]string(nil), command[1:]...), tmp)
	cmd := exec.CommandContext(ctx, command[0], args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return strings.TrimSpace(string(out)), err
	}

	formatted, err := os.ReadFile(tmp)
	if err != nil {
		return "", err
	}
	if len(formatted) == 0 && len(src) != 0 {
		return "", fmt.Errorf("%s left the file empty", command[0])
	}
	if bytes.Equal(formatted, src) {
		return "", nil
	}
	return "", writeFile(filename, formatted)
}

func matchPattern(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	ok, err := filepath.Match(pattern, name)
	return err == nil && ok
}
