package vfs

// Op identifies the kind of change reported to observers.
type Op int

const (
	OpCreate Op = iota + 1
	OpWrite
	OpRemove
	OpRename
	OpChmod
	OpChdir
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	case OpChmod:
		return "chmod"
	case OpChdir:
		return "chdir"
	default:
		return "unknown"
	}
}

// Event describes one change to the tree or the working directory.
// From is set for OpRename (old path) and OpChdir (previous directory).
type Event struct {
	Op   Op
	Path string
	From string
}

// Observer receives events synchronously, after the change is applied.
type Observer func(Event)

type subscription struct {
	id int
	fn Observer
}

// Subscribe registers an observer and returns a function that removes it.
func (fsys *FileSystem) Subscribe(fn Observer) (cancel func()) {
	fsys.nextSubID++
	id := fsys.nextSubID
	fsys.observers = append(fsys.observers, subscription{id: id, fn: fn})

	return func() {
		for i, s := range fsys.observers {
			if s.id == id {
				fsys.observers = append(fsys.observers[:i], fsys.observers[i+1:]...)
				return
			}
		}
	}
}

func (fsys *FileSystem) emit(ev Event) {
	for _, s := range fsys.observers {
		fsys.notify(s.fn, ev)
	}
}

func (fsys *FileSystem) notify(fn Observer, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			fsys.logf("observer panicked on %s %s: %v", ev.Op, ev.Path, r)
		}
	}()
	fn(ev)
}
