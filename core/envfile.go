package core

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// LoadEnvFile parses KEY=VALUE lines from <clonePath>/.env, ignoring
// blank lines and #-prefixed comments (spec.md §4.7 step 7). Returns
// nil if no .env file is present. No dotenv library appears anywhere
// in the example pack, so this is a direct bufio.Scanner port of
// original_source/run_parallel.py's load_dotenv-equivalent logic (see
// DESIGN.md).
func LoadEnvFile(clonePath string) map[string]string {
	f, err := os.Open(filepath.Join(clonePath, ".env"))
	if err != nil {
		return nil
	}
	defer f.Close()

	vars := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		vars[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return vars
}

// MergeEnv appends vars onto base (a process environment in "KEY=VALUE"
// form) for every key not already present, per spec.md §4.7 step 7 and
// §5's "reads but does not write parent-process environment".
func MergeEnv(base []string, vars map[string]string) []string {
	present := make(map[string]bool, len(base))
	for _, kv := range base {
		if k, _, ok := strings.Cut(kv, "="); ok {
			present[k] = true
		}
	}
	out := append([]string{}, base...)
	for k, v := range vars {
		if !present[k] {
			out = append(out, k+"="+v)
		}
	}
	return out
}
