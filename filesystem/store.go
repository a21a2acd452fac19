// Package filesystem provides the static-root storage backend for assetserve.
// Every path is checked against the canonical root before it is touched, and
// all file access goes through an os.Root so that symlinks cannot escape it.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/sagarc03/assetserve"
)

// Store provides read-only access to a static asset directory.
type Store struct {
	dir  string
	root *os.Root
}

// NewFileStorage opens dir as the static root. The directory is resolved to
// an absolute path with symlinks evaluated, and must exist.
func NewFileStorage(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve static root: %w", err)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve static root: %w", err)
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return nil, fmt.Errorf("stat static root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("static root %s is not a directory", canonical)
	}

	root, err := os.OpenRoot(canonical)
	if err != nil {
		return nil, fmt.Errorf("open static root: %w", err)
	}

	return &Store{dir: canonical, root: root}, nil
}

// Dir returns the canonical absolute path of the static root.
func (s *Store) Dir() string {
	return s.dir
}

// Close releases the root handle.
func (s *Store) Close() error {
	return s.root.Close()
}

// maxLinkHops bounds how many dangling symlinks canonicalize follows.
const maxLinkHops = 40

// canonicalize evaluates symlinks in p even when its final target does not
// exist. The longest existing prefix is resolved and the missing remainder
// appended; a dangling symlink is replaced by its target first.
func canonicalize(p string) (string, error) {
	var rest string
	for hops := 0; ; {
		resolved, err := filepath.EvalSymlinks(p)
		if err == nil {
			return filepath.Join(resolved, rest), nil
		}
		if !isNotExist(err) {
			return "", err
		}

		if info, lerr := os.Lstat(p); lerr == nil && info.Mode()&fs.ModeSymlink != 0 {
			hops++
			if hops > maxLinkHops {
				return "", fmt.Errorf("%s: too many links", p)
			}
			target, err := os.Readlink(p)
			if err != nil {
				return "", err
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(p), target)
			}
			p = filepath.Clean(target)
			continue
		}

		parent := filepath.Dir(p)
		if parent == p {
			return filepath.Join(p, rest), nil
		}
		rest = filepath.Join(filepath.Base(p), rest)
		p = parent
	}
}

// resolve joins path onto the root and checks that the canonical result is
// still inside it.
func (s *Store) resolve(path string) (string, error) {
	full := filepath.Join(s.dir, filepath.FromSlash(path))

	canonical, err := canonicalize(full)
	if err != nil {
		return "", fmt.Errorf("canonicalize path: %w", err)
	}

	if !s.contains(canonical) {
		return "", assetserve.ErrOutsideRoot
	}

	rel, err := filepath.Rel(s.dir, canonical)
	if err != nil {
		return "", assetserve.ErrOutsideRoot
	}
	return rel, nil
}

// isNotExist treats a file used as a directory (logos/a.png/b.png) the same
// as a missing one.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

func (s *Store) contains(p string) bool {
	if p == s.dir {
		return true
	}
	prefix := s.dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(p, prefix)
}

// Stat returns file information for path. Returns assetserve.ErrOutsideRoot
// if the canonical path escapes the root and assetserve.ErrNotFound if it
// does not exist.
func (s *Store) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := s.root.Stat(rel)
	if err != nil {
		if isNotExist(err) {
			return nil, assetserve.ErrNotFound
		}
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return info, nil
}

type ctxReadCloser struct {
	ctx context.Context
	rc  io.ReadCloser
}

func (r *ctxReadCloser) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.rc.Read(p)
}

func (r *ctxReadCloser) Close() error {
	return r.rc.Close()
}

// Open opens path for reading. Reads fail with the context's error once ctx
// is canceled; the caller must still Close the reader.
func (s *Store) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := s.root.Open(rel)
	if err != nil {
		if isNotExist(err) {
			return nil, assetserve.ErrNotFound
		}
		return nil, fmt.Errorf("open file: %w", err)
	}

	return &ctxReadCloser{ctx: ctx, rc: f}, nil
}

// List recursively walks the root and returns every regular file whose
// relative path is a valid asset path, sorted by path.
func (s *Store) List(ctx context.Context) ([]assetserve.AssetEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []assetserve.AssetEntry

	if err := s.walkDir(ctx, ".", &entries); err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return entries, nil
}

func (s *Store) walkDir(ctx context.Context, path string, entries *[]assetserve.AssetEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), path)
	if err != nil {
		return err
	}

	for _, entry := range dirEntries {
		if err := ctx.Err(); err != nil {
			return err
		}

		entryPath := filepath.ToSlash(filepath.Join(path, entry.Name()))

		if entry.IsDir() {
			if err := s.walkDir(ctx, entryPath, entries); err != nil {
				return err
			}
			continue
		}

		if !entry.Type().IsRegular() {
			slog.Debug("skipping non-regular file", "path", entryPath)
			continue
		}

		req, ok := assetserve.ParseAssetRequest(entryPath)
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("walk dir: %w", err)
		}

		*entries = append(*entries, assetserve.AssetEntry{
			Path:        req.Path,
			Folder:      req.Folder,
			Size:        info.Size(),
			ETag:        assetserve.FormatETag(info.Size(), info.ModTime()),
			ContentType: assetserve.GetMimeType(req.Extension),
			ModTime:     info.ModTime(),
		})
	}

	return nil
}
