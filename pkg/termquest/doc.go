// Package termquest defines the contracts shared by the shell core and its
// collaborators: the Command interface every built-in and narrative handler
// implements, the options and results passed through the command pipeline,
// execution events broadcast to listeners, and the application's sentinel
// errors and exit codes.
package termquest
