// Package commands implements the shell's built-in commands on top of the
// virtual filesystem.
//
// Every command converts filesystem errors into failed results of the form
// "<cmd>: <path>: <reason>" so that nothing is ever thrown back into the
// processor.
package commands
