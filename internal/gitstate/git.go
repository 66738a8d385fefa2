// Package gitstate supplies the list of changed files for an analysis run by
// shelling out to git. Two modes exist: uncommitted working-tree changes and
// a diff against a base branch.
package gitstate

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"impacted/internal/core/errors"
)

type Mode string

const (
	ModeUnstaged Mode = "unstaged"
	ModeBranch   Mode = "branch"
)

func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case ModeUnstaged, ModeBranch:
		return Mode(value), nil
	default:
		return "", errors.Newf(errors.CodeUsageError, "invalid git mode %q (expected %q or %q)", value, ModeUnstaged, ModeBranch)
	}
}

// FindModifiedFiles returns the repo-relative paths changed under the given
// mode. A clean working tree yields nil, nil: no changes is a normal
// outcome, not an error.
func FindModifiedFiles(repoDir string, mode Mode, baseBranch string) ([]string, error) {
	switch mode {
	case ModeUnstaged:
		out, err := runGit(repoDir, "diff", "--name-only")
		if err != nil {
			return nil, err
		}
		return splitLines(out), nil
	case ModeBranch:
		if baseBranch == "" {
			return nil, errors.New(errors.CodeUsageError, "branch mode requires a base branch")
		}
		out, err := runGit(repoDir, "diff", "--name-only", baseBranch)
		if err != nil {
			return nil, err
		}
		return splitLines(out), nil
	default:
		return nil, errors.Newf(errors.CodeNotSupported, "unknown git mode %q", mode)
	}
}

// VerifyRef checks that a ref exists in the repository.
func VerifyRef(repoDir, ref string) error {
	if _, err := runGit(repoDir, "rev-parse", "--verify", ref); err != nil {
		return errors.Wrap(err, errors.CodeUsageError, fmt.Sprintf("base branch %q does not exist in the git repository", ref))
	}
	return nil
}

func runGit(repoDir string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", repoDir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", errors.Wrap(err, errors.CodeInternal, "git "+strings.Join(args, " ")+": "+msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func splitLines(out string) []string {
	if out == "" {
		return nil
	}
	lines := strings.Split(out, "\n")
	files := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	if len(files) == 0 {
		return nil
	}
	return files
}
