// Package shell assembles a playable session from a config.Config and runs
// it line by line.
//
// A Session owns the virtual filesystem, the command registry, the story
// manager, the optional journal and the processor that ties them together.
// Front ends (the TUI and the line-mode runner) talk only to the Session.
package shell
