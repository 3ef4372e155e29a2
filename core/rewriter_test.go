package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRewrite_SharedNetLiteralReplacedInScanDirs(t *testing.T) {
	t.Parallel()
	clone := t.TempDir()
	writeFile(t, filepath.Join(clone, "workflows", "runner.py"), `NETWORK = "shared_net"
other = 'shared_net'
`)

	id := JobID("deadbeef00")
	Rewrite(clone, id, nil)

	data, err := os.ReadFile(filepath.Join(clone, "workflows", "runner.py"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "shared_net")
	assert.Contains(t, string(data), id.Network())
}

func TestRewrite_SharedNetLiteralOutsideScanDirsUntouched(t *testing.T) {
	t.Parallel()
	clone := t.TempDir()
	writeFile(t, filepath.Join(clone, "other", "file.py"), `NETWORK = "shared_net"`)

	Rewrite(clone, JobID("deadbeef00"), nil)

	data, err := os.ReadFile(filepath.Join(clone, "other", "file.py"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "shared_net")
}

func TestRewrite_ComposeContainerNamePrefixed(t *testing.T) {
	t.Parallel()
	clone := t.TempDir()
	writeFile(t, filepath.Join(clone, "docker-compose.yml"), `services:
  app:
    container_name: app
    networks:
      - shared_net
`)

	id := JobID("cafef00d01")
	Rewrite(clone, id, nil)

	data, err := os.ReadFile(filepath.Join(clone, "docker-compose.yml"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "container_name: "+id.ComposePrefix()+"-app")
	assert.NotContains(t, content, "shared_net")
}

func TestRewrite_HostPortZeroed(t *testing.T) {
	t.Parallel()
	clone := t.TempDir()
	writeFile(t, filepath.Join(clone, "docker-compose.yaml"), `services:
  app:
    ports:
      - "8080:80"
      - 5432:5432/tcp
`)

	Rewrite(clone, JobID("cafef00d01"), nil)

	data, err := os.ReadFile(filepath.Join(clone, "docker-compose.yaml"))
	require.NoError(t, err)
	for _, line := range strings.Split(string(data), "\n") {
		if strings.Contains(line, ":") && strings.Contains(line, "- ") {
			assert.True(t, strings.Contains(line, "0:80") || strings.Contains(line, "0:5432"),
				"unexpected unzeroed port line: %q", line)
		}
	}
}

func TestRewrite_GitUtilsDisarmed(t *testing.T) {
	t.Parallel()
	clone := t.TempDir()
	writeFile(t, filepath.Join(clone, "utils", "git_utils.py"), `import subprocess

def reset_ownership():
    subprocess.run(["sudo", "chown", "-r", "ubuntu", "~/bountybench/bountytasks"])

def clone_repo(path, use_sudo=True):
    pass
`)

	Rewrite(clone, JobID("cafef00d01"), nil)

	data, err := os.ReadFile(filepath.Join(clone, "utils", "git_utils.py"))
	require.NoError(t, err)
	content := string(data)
	assert.NotContains(t, content, `subprocess.run(["sudo", "chown"`)
	assert.NotContains(t, content, "use_sudo=True")
}

func TestRewrite_Idempotent(t *testing.T) {
	t.Parallel()
	clone := t.TempDir()
	writeFile(t, filepath.Join(clone, "docker-compose.yml"), `services:
  app:
    container_name: app
    ports:
      - "8080:80"
    networks:
      - shared_net
`)

	id := JobID("badc0ffee0")
	Rewrite(clone, id, nil)
	first, err := os.ReadFile(filepath.Join(clone, "docker-compose.yml"))
	require.NoError(t, err)

	Rewrite(clone, id, nil)
	second, err := os.ReadFile(filepath.Join(clone, "docker-compose.yml"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRewrite_BinaryFileSkippedSilently(t *testing.T) {
	t.Parallel()
	clone := t.TempDir()
	path := filepath.Join(clone, "workflows", "blob.py")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("shared_net\x00\x01\x02binary"), 0o644))

	assert.NotPanics(t, func() {
		Rewrite(clone, JobID("badc0ffee0"), nil)
	})
}
