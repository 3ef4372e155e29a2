package core

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// scanDirs are the clone-relative roots searched for .py files by the
// shared-network-literal rewrite (spec.md §4.4 rule 1).
var scanDirs = []string{"workflows", "resources", "agents", "tests"}

const sharedNetLiteral = "shared_net"

var (
	containerNameRe = regexp.MustCompile(`^(\s*container_name:\s*)(['"]?)([^'"\s#]+)(['"]?)(\s*)$`)
	hostPortRe      = regexp.MustCompile(`^(\s*-\s*)(['"]?)(\d+)(:)(\d+)((?:/\w+)?)(['"]?)(\s*)$`)
	chownCallRe     = regexp.MustCompile(`subprocess\.run\(\["sudo",\s*"chown",\s*"-r",\s*"ubuntu",\s*"~/bountybench/bountytasks"\]\)`)
)

// Rewrite applies the closed set of isolation rewrites to clonePath for
// the given job, in the fixed order spec.md §4.4 lists. Each rule is
// text-level and idempotent; rewriter.go never parses YAML (spec.md §9
// explicitly rejects a structured parser for this concern — see
// DESIGN.md). Per-file errors are logged and skipped, never fatal.
func Rewrite(clonePath string, id JobID, logger Logger) {
	jobNetwork := id.Network()
	composePrefix := id.ComposePrefix()

	rewriteSharedNetInScanDirs(clonePath, jobNetwork, logger)
	rewriteComposeFiles(clonePath, jobNetwork, composePrefix, logger)
	disarmGitUtils(clonePath, logger)
}

func rewriteSharedNetInScanDirs(clonePath, jobNetwork string, logger Logger) {
	for _, dir := range scanDirs {
		root := filepath.Join(clonePath, dir)
		if _, err := os.Stat(root); err != nil {
			continue
		}
		_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".py") {
				return nil
			}
			replaceInFile(path, func(content string) (string, bool) {
				if !strings.Contains(content, sharedNetLiteral) {
					return content, false
				}
				out := strings.ReplaceAll(content, `"`+sharedNetLiteral+`"`, `"`+jobNetwork+`"`)
				out = strings.ReplaceAll(out, `'`+sharedNetLiteral+`'`, `'`+jobNetwork+`'`)
				return out, out != content
			}, logger)
			return nil
		})
	}
}

func rewriteComposeFiles(clonePath, jobNetwork, composePrefix string, logger Logger) {
	_ = filepath.WalkDir(clonePath, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := d.Name()
		if name != "docker-compose.yml" && name != "docker-compose.yaml" {
			return nil
		}
		replaceInFile(path, func(content string) (string, bool) {
			out := strings.ReplaceAll(content, `"`+sharedNetLiteral+`"`, `"`+jobNetwork+`"`)
			out = strings.ReplaceAll(out, `'`+sharedNetLiteral+`'`, `'`+jobNetwork+`'`)
			out = replaceWholeWord(out, sharedNetLiteral, jobNetwork)
			out = rewriteLines(out, func(line string) string {
				if m := containerNameRe.FindStringSubmatch(line); m != nil {
					value := m[3]
					if !strings.HasPrefix(value, composePrefix+"-") {
						value = composePrefix + "-" + value
					}
					return m[1] + value + m[5]
				}
				if m := hostPortRe.FindStringSubmatch(line); m != nil {
					return m[1] + m[2] + "0" + m[4] + m[5] + m[6] + m[7] + m[8]
				}
				return line
			})
			return out, out != content
		}, logger)
		return nil
	})
}

// disarmGitUtils neutralizes the hard-coded host-wide chown and forces
// use_sudo off in the clone's version-control helper (spec.md §4.4
// rule 3).
func disarmGitUtils(clonePath string, logger Logger) {
	path := filepath.Join(clonePath, "utils", "git_utils.py")
	if _, err := os.Stat(path); err != nil {
		return
	}
	replaceInFile(path, func(content string) (string, bool) {
		out := rewriteLines(content, func(line string) string {
			if chownCallRe.MatchString(line) {
				return ""
			}
			return line
		})
		out = strings.ReplaceAll(out, "use_sudo=True", "use_sudo=False")
		return out, out != content
	}, logger)
}

// replaceWholeWord substitutes unquoted occurrences of old with new,
// leaving quoted occurrences (already handled separately) untouched.
func replaceWholeWord(s, old, new string) string {
	re := regexp.MustCompile(`(^|[^'"\w])` + regexp.QuoteMeta(old) + `([^'"\w]|$)`)
	return re.ReplaceAllString(s, "${1}"+new+"${2}")
}

// rewriteLines applies fn to every line of s while preserving each
// line's original terminator, per spec.md §9's requirement to
// preserve line endings outside the matched regions. A line rewritten
// to "" by fn (the chown-removal case) is dropped entirely, terminator
// included.
func rewriteLines(s string, fn func(string) string) string {
	var b strings.Builder
	for _, chunk := range strings.SplitAfter(s, "\n") {
		line := strings.TrimRight(chunk, "\r\n")
		rewritten := fn(line)
		if rewritten == "" && line != "" {
			continue
		}
		b.WriteString(rewritten + chunk[len(line):])
	}
	return b.String()
}

// replaceInFile reads path, applies fn, and writes the result back
// only if fn reports a change. Any read/write/decode failure is
// logged and the file is left untouched (spec.md §4.4, §7
// RewriteSkipped).
func replaceInFile(path string, fn func(string) (string, bool), logger Logger) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if logger != nil {
			logger.Warningf("%v", WrapRewriteError(path, err))
		}
		return
	}
	if !isLikelyText(raw) {
		return
	}
	out, changed := fn(string(raw))
	if !changed {
		return
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		if logger != nil {
			logger.Warningf("%v", WrapRewriteError(path, err))
		}
	}
}

// isLikelyText rejects content containing a NUL byte in its first
// 8KiB, the same heuristic used to skip binary files silently
// (spec.md §4.4: "files that are not valid text are skipped").
func isLikelyText(data []byte) bool {
	n := len(data)
	if n > 8192 {
		n = 8192
	}
	for _, b := range data[:n] {
		if b == 0 {
			return false
		}
	}
	return true
}
