package stylesheet

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// Source resolves stylesheet paths declared by component descriptors.
type Source struct {
	fsys fs.FS
}

// NewSource reads stylesheets from fsys.
func NewSource(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// Load returns the stylesheet at name. A missing file is not an error:
// found is false and the content empty.
func (s *Source) Load(name string) (content string, found bool, err error) {
	if name == "" || s == nil || s.fsys == nil {
		return "", false, nil
	}
	data, err := fs.ReadFile(s.fsys, path.Clean(name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read stylesheet %s: %w", name, err)
	}
	return string(data), true, nil
}
