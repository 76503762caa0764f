// Package full is a small register machine that uses every parameter type
// the schema language offers. Its tests run real programs through the
// generated dispatch routine.
package full

//go:generate go run ../../../wrangle
