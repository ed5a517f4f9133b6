package fragment

import (
	"errors"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	fragerrors "github.com/alexisbeaulieu97/fragments/pkg/errors"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
	tmpExt               = ".tmp"
)

// Output is the content of one fragment ready to be written.
type Output struct {
	ID       string
	HTML     string
	CSS      string
	Manifest Manifest
}

// Writer writes fragments into an output tree.
type Writer struct {
	fs billy.Filesystem
}

// NewWriter writes into fs, which is treated as the output root.
func NewWriter(fs billy.Filesystem) *Writer {
	return &Writer{fs: fs}
}

// NewDirWriter writes into the directory dir on disk.
func NewDirWriter(dir string) *Writer {
	return NewWriter(osfs.New(dir))
}

// Filesystem exposes the output root.
func (w *Writer) Filesystem() billy.Filesystem {
	return w.fs
}

// WriteFragment writes the three files of out under its versioned directory.
// Every file is staged first and renamed into place once all of them have
// been written, so a failure never leaves a mix of old and new files.
func (w *Writer) WriteFragment(out Output) error {
	manifest, err := encodeJSON(out.Manifest)
	if err != nil {
		return fragerrors.NewWriteError(ManifestPath(out.ID), err)
	}

	dir := Dir(out.ID)
	files := []stagedFile{
		{path.Join(dir, HTMLFile), []byte(out.HTML)},
		{path.Join(dir, CSSFile), []byte(out.CSS)},
		{path.Join(dir, ManifestFile), manifest},
	}

	if err := w.fs.MkdirAll(dir, dirPerm); err != nil {
		return fragerrors.NewWriteError(dir, err)
	}
	for i, f := range files {
		if err := util.WriteFile(w.fs, f.name+tmpExt, f.data, filePerm); err != nil {
			w.discard(files[:i+1])
			return fragerrors.NewWriteError(f.name, err)
		}
	}
	for _, f := range files {
		if err := w.fs.Rename(f.name+tmpExt, f.name); err != nil {
			return fragerrors.NewWriteError(f.name, err)
		}
	}
	return nil
}

type stagedFile struct {
	name string
	data []byte
}

func (w *Writer) discard(files []stagedFile) {
	for _, f := range files {
		_ = w.fs.Remove(f.name + tmpExt)
	}
}

// WriteIndex writes the root manifest.
func (w *Writer) WriteIndex(idx Index) error {
	data, err := encodeJSON(idx)
	if err != nil {
		return fragerrors.NewWriteError(ManifestFile, err)
	}
	if err := util.WriteFile(w.fs, ManifestFile, data, filePerm); err != nil {
		return fragerrors.NewWriteError(ManifestFile, err)
	}
	return nil
}

// ReadFile returns the content of name, or found=false when it does not
// exist.
func (w *Writer) ReadFile(name string) (data []byte, found bool, err error) {
	data, err = util.ReadFile(w.fs, name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
