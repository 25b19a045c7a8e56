// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ifcstep/ifcstep/internal/exc"
	"github.com/ifcstep/ifcstep/internal/idl"
)

var kinds = map[string]idl.FileKind{
	".ifc":  idl.FileKindIFC,
	".stp":  idl.FileKindSTEP,
	".step": idl.FileKindSTEP,
}

// KindOf reports the file kind implied by a path's extension. Extensions are
// matched case-insensitively because exporters write both .ifc and .IFC.
func KindOf(name string) idl.FileKind {
	return kinds[strings.ToLower(filepath.Ext(name))]
}

type FileSystemLocalOption func(*fileSystemLocal)

// WithOptionFS reads from fsys instead of the directory tree under root.
// Writes still go to root.
func WithOptionFS(fsys fs.FS) FileSystemLocalOption {
	return func(l *fileSystemLocal) {
		l.fsys = fsys
	}
}

type fileSystemLocal struct {
	root string
	fsys fs.FS
}

// NewFileSystemLocal opens exchange files below root. A directory opens as
// every exchange file directly inside it, sorted by name.
func NewFileSystemLocal(root string, options ...FileSystemLocalOption) (idl.FileSystem, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, exc.WrapUnknown(exc.Location{URI: root}, err)
	}
	l := &fileSystemLocal{root: abs}
	for _, option := range options {
		option(l)
	}
	if l.fsys == nil {
		l.fsys = os.DirFS(abs)
	}
	return l, nil
}

// relative turns a URI into the unrooted, slash separated form io/fs wants.
func relative(uri string) string {
	p := uri
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		p = u.Path
	}
	p = strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(p)), "/")
	if p == "" {
		return "."
	}
	return p
}

// file names the result by its rooted path.
func (l *fileSystemLocal) file(name string) idl.File {
	return NewFileFN("/"+name, func() (io.ReadCloser, error) {
		return l.fsys.Open(name)
	}, KindOf(name))
}

func (l *fileSystemLocal) Open(ctx context.Context, uri string) ([]idl.File, error) {
	name := relative(uri)
	info, err := fs.Stat(l.fsys, name)
	if err != nil {
		return nil, fsErr(name, err)
	}
	if !info.IsDir() {
		return []idl.File{l.file(name)}, nil
	}
	entries, err := fs.ReadDir(l.fsys, name)
	if err != nil {
		return nil, fsErr(name, err)
	}
	var files []idl.File
	for _, entry := range entries {
		if entry.IsDir() || KindOf(entry.Name()) == idl.FileKindNone {
			continue
		}
		files = append(files, l.file(path.Join(name, entry.Name())))
	}
	if len(files) == 0 {
		return nil, exc.Errorf(exc.Location{URI: uri}, exc.CodeFileNotFound, "directory %s holds no exchange files", uri)
	}
	return files, nil
}

func (l *fileSystemLocal) Write(ctx context.Context, uri string, content string) error {
	p := filepath.Join(l.root, filepath.FromSlash(relative(uri)))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fsErr(p, err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		return fsErr(p, err)
	}
	return nil
}

func fsErr(name string, err error) error {
	loc := exc.Location{URI: name}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		loc.URI = pathErr.Path
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return exc.Wrap(loc, exc.CodeFileNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return exc.Wrap(loc, exc.CodePermissionDenied, err)
	default:
		return exc.WrapUnknown(loc, err)
	}
}
