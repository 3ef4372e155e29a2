package core

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
)

// composeFileNames are the basenames that mark a directory as a
// compose project root, scanned for anywhere in the clone (spec.md §4.5).
var composeFileNames = map[string]bool{
	"docker-compose.yml":  true,
	"docker-compose.yaml": true,
}

// FindComposeDirs returns every directory under clonePath containing a
// compose file, in walk order.
func FindComposeDirs(clonePath string) []string {
	var dirs []string
	_ = filepath.WalkDir(clonePath, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if composeFileNames[d.Name()] {
			dirs = append(dirs, filepath.Dir(path))
		}
		return nil
	})
	return dirs
}

// TeardownComposeProjects runs `compose down` in every compose
// directory the clone contains, scoped to composePrefix via
// COMPOSE_PROJECT_NAME, each under its own bounded timeout. Grounded
// on the teacher's composejob.go buildCommand pattern
// (exec.Command("docker", "compose", ...)); each directory's teardown
// is independent and a failure there does not abort the others
// (spec.md §4.5, §4.7 cleanup step b).
func TeardownComposeProjects(ctx context.Context, clonePath, composePrefix string, logger Logger) {
	for _, dir := range FindComposeDirs(clonePath) {
		teardownOne(ctx, dir, composePrefix, logger)
	}
}

func teardownOne(ctx context.Context, dir, composePrefix string, logger Logger) {
	cctx, cancel := context.WithTimeout(ctx, dockerTimeout)
	defer cancel()

	// #nosec G204 -- dir is a path discovered inside a job's own clone, not attacker input
	cmd := exec.CommandContext(cctx, "docker", "compose", "down", "--volumes", "--remove-orphans")
	cmd.Dir = dir
	cmd.Env = append(cmd.Environ(), "COMPOSE_PROJECT_NAME="+composePrefix)

	if out, err := cmd.CombinedOutput(); err != nil && logger != nil {
		logger.Warningf("%v: %s", WrapDockerError("compose down", dir, err), out)
	}
}
