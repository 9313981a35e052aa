//go:build windows

package dynload

import "syscall"

type windowsLibrary struct {
	mod *syscall.LazyDLL
}

func openOne(name string) (Library, error) {
	mod := syscall.NewLazyDLL(name)
	if err := mod.Load(); err != nil {
		return nil, err
	}
	return &windowsLibrary{mod: mod}, nil
}

func (l *windowsLibrary) Sym(name string) (uintptr, error) {
	proc := l.mod.NewProc(name)
	if err := proc.Find(); err != nil {
		return 0, err
	}
	return proc.Addr(), nil
}

func (l *windowsLibrary) Close() error {
	// Windows has no reliable unload-on-demand story for driver DLLs like
	// d3dkmt/gdi32 -- matches spec.md's "DynLoader handles are process-global
	// and never unloaded" lifecycle note.
	return nil
}
