//go:build !windows

package dynload

import "github.com/ebitengine/purego"

type unixLibrary struct {
	handle uintptr
}

func openOne(name string) (Library, error) {
	handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	return &unixLibrary{handle: handle}, nil
}

func (l *unixLibrary) Sym(name string) (uintptr, error) {
	return purego.Dlsym(l.handle, name)
}

func (l *unixLibrary) Close() error {
	return purego.Dlclose(l.handle)
}
