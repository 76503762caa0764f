// Package tiny is a two instruction machine whose generated dispatch code
// is small enough to check against hand-assembled byte streams.
package tiny

//go:generate go run ../../../wrangle
