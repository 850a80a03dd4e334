// Package textfsm compiles TextFSM templates once and runs raw CLI output
// through them.
//
// Template parsing and the state machine come from gotextfsm. This package
// adds a compile-once cache keyed by template path, keeps the declaration
// order of Values so records come back as ordered rows, and flattens List
// values into a single field joined by ListSeparator.
package textfsm
