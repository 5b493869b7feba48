package commands

import "github.com/vvka-141/termquest/pkg/termquest"

// Registrar accepts commands.
type Registrar interface {
	Register(cmd termquest.Command)
}

// Deps carries the session collaborators some built-ins need. Any field may
// be left empty; the affected commands then degrade to read-only behavior.
type Deps struct {
	Env     *termquest.Environment
	History HistorySource
	Catalog Catalog
	Exit    func()
}

// Builtins returns every built-in command.
func Builtins(deps Deps) []termquest.Command {
	return []termquest.Command{
		newPwd(),
		newCd(deps.Env),
		newLs(),
		newTree(),
		newCat(),
		newMkdir(),
		newTouch(),
		newRm(),
		newCp(),
		newMv(),
		newStat(),
		newSha256sum(),
		newChmod(),
		newChown(),
		newEcho(),
		newEnv(),
		newExport(deps.Env),
		newUnset(deps.Env),
		newWhoami(),
		newHistory(deps.History),
		newHelp(deps.Catalog),
		newClear(),
		newExit(deps.Exit),
	}
}

// RegisterBuiltins registers every built-in command with reg.
func RegisterBuiltins(reg Registrar, deps Deps) {
	for _, cmd := range Builtins(deps) {
		reg.Register(cmd)
	}
}
