package core

import (
	"os"
	"path/filepath"
)

// collectedKinds are the clone-relative output sub-trees the Log
// Collector copies into parallel_logs/ (spec.md §4.6).
var collectedKinds = []string{"logs", "full_logs"}

// CollectLogs copies clonePath's logs/ and full_logs/ sub-trees into
// outputRoot/<kind>/<JobId>__<relpath>, per spec.md §4.6. Runs even
// when the job failed; a missing source sub-tree is not an error. Per
// spec.md §7, failures here are CleanupFailed: logged, never altering
// the JobResult.
func CollectLogs(clonePath, outputRoot string, id JobID, logger Logger) {
	for _, kind := range collectedKinds {
		src := filepath.Join(clonePath, kind)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dstRoot := filepath.Join(outputRoot, kind)
		err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(src, path)
			if err != nil {
				return nil
			}
			dst := filepath.Join(dstRoot, string(id)+"__"+rel)
			if err := copyFile(path, dst, 0o644); err != nil && logger != nil {
				logger.Warningf("collect %s: %v", path, err)
			}
			return nil
		})
		if err != nil && logger != nil {
			logger.Warningf("walk %s: %v", src, err)
		}
	}
}

// OpenStreamLogs opens (creating parent directories as needed) the
// per-job stdout/stderr log files under outputRoot/stdout and
// outputRoot/stderr, for the child process to write into directly
// — no in-memory buffering, per spec.md §4.6 and §5.
func OpenStreamLogs(outputRoot string, id JobID) (stdout, stderr *os.File, err error) {
	stdout, err = openLogFile(outputRoot, "stdout", id)
	if err != nil {
		return nil, nil, err
	}
	stderr, err = openLogFile(outputRoot, "stderr", id)
	if err != nil {
		stdout.Close()
		return nil, nil, err
	}
	return stdout, stderr, nil
}

func openLogFile(outputRoot, kind string, id JobID) (*os.File, error) {
	dir := filepath.Join(outputRoot, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.Create(filepath.Join(dir, string(id)+".log"))
}
