package core

import (
	"io"
	"os"
	"path/filepath"
)

// skipDirs are basenames excluded anywhere in the tree when cloning
// (spec.md §4.3, §6): version-dependency caches and virtual
// environments the child process regenerates or ignores.
var skipDirs = map[string]bool{
	"venv":         true,
	".venv":        true,
	"node_modules": true,
	"__pycache__":  true,
	".mypy_cache":  true,
}

// CreateClone produces a deep file-tree copy of source at
// <workdir>/bb_job_<id>, excluding skipDirs by basename and preserving
// symbolic links as links rather than dereferencing them. Grounded on
// original_source/run_parallel.py's create_clone
// (shutil.copytree(..., symlinks=True, ignore=_ignore)); implemented
// on path/filepath.WalkDir since no pack example imports a tree-copy
// library (see DESIGN.md).
func CreateClone(source, workdir string, id JobID) (string, error) {
	clonePath := filepath.Join(workdir, id.CloneDirName())
	if err := os.MkdirAll(clonePath, 0o755); err != nil {
		return "", WrapCloneError("create", clonePath, err)
	}

	err := filepath.WalkDir(source, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != source && skipDirs[d.Name()] {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		dst := filepath.Join(clonePath, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			return copySymlink(path, dst)
		case d.IsDir():
			return os.MkdirAll(dst, info.Mode().Perm())
		default:
			return copyFile(path, dst, info.Mode().Perm())
		}
	})
	if err != nil {
		_ = os.RemoveAll(clonePath)
		return "", WrapCloneError("copy", source, err)
	}
	return clonePath, nil
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return err
	}
	_ = os.Remove(dst)
	return os.Symlink(target, dst)
}

func copyFile(src, dst string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := tryReflinkCopy(out, in); err == nil {
		return nil
	}
	_, err = io.Copy(out, in)
	return err
}

// DestroyClone best-effort removes a clone directory tree. Failures
// are logged by the caller and swallowed here (spec.md §4.3).
func DestroyClone(clonePath string, logger Logger) {
	if err := os.RemoveAll(clonePath); err != nil && logger != nil {
		logger.Warningf("failed to remove clone %s: %v", clonePath, err)
	}
}
