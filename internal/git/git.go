package git

import (
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/LFroesch/gravily/internal/logger"
)

// Status is the git state of the directory being browsed
type Status struct {
	Branch   string
	modified map[string]bool
}

// Load collects the branch and modified paths of the repository containing
// dir. Outside a repository the zero Status is returned.
func Load(dir string) Status {
	root := repoRoot(dir)
	if root == "" {
		return Status{}
	}
	return Status{
		Branch:   GetBranch(dir),
		modified: GetModifiedFiles(root),
	}
}

// IsModified reports whether path, or anything below it, has changes
func (s Status) IsModified(path string) bool {
	return s.modified[filepath.Clean(path)]
}

func repoRoot(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// GetModifiedFiles returns the changed paths of the repository at root,
// along with every directory that contains one
func GetModifiedFiles(root string) map[string]bool {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = root
	output, err := cmd.Output()
	if err != nil {
		logger.Debug("git status failed in %s: %v", root, err)
		return map[string]bool{}
	}
	return parsePorcelain(root, string(output))
}

func parsePorcelain(root string, output string) map[string]bool {
	modified := make(map[string]bool)
	root = filepath.Clean(root)

	for _, line := range strings.Split(output, "\n") {
		if len(line) <= 3 {
			continue
		}
		// Status is in first two characters, filename starts at position 3
		filename := line[3:]
		if i := strings.Index(filename, " -> "); i >= 0 {
			filename = filename[i+4:]
		}
		if unquoted, err := strconv.Unquote(filename); err == nil {
			filename = unquoted
		}
		filename = strings.TrimSuffix(strings.TrimSpace(filename), "/")
		if filename == "" {
			continue
		}

		p := filepath.Join(root, filepath.FromSlash(filename))
		for p != root && !modified[p] {
			modified[p] = true
			parent := filepath.Dir(p)
			if parent == p {
				break
			}
			p = parent
		}
	}

	return modified
}

// GetBranch returns the current git branch name
func GetBranch(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}
