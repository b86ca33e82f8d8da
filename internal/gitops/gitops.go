// Package gitops shells out to git for feature branch management.
// Branch create/checkout is the entire surface — everything else about
// the repository is none of SpecPulse's business.
//
// A workspace without git, or outside a repository, is a soft condition:
// callers probe with IsRepo and simply skip branching.
package gitops

import (
	"fmt"
	"os/exec"
	"strings"
)

// execCommand is swappable in tests, same pattern as timeNow elsewhere.
var execCommand = exec.Command

// IsRepo reports whether root is inside a git work tree. Also false
// when the git binary itself is absent.
func IsRepo(root string) bool {
	cmd := execCommand("git", "-C", root, "rev-parse", "--is-inside-work-tree")
	out, err := cmd.Output()
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// CurrentBranch returns the checked-out branch name.
func CurrentBranch(root string) (string, error) {
	cmd := execCommand("git", "-C", root, "rev-parse", "--abbrev-ref", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("reading current branch: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CreateBranch creates and checks out a branch. If the branch already
// exists it is checked out instead, so re-running a feature command
// converges on the same branch rather than failing.
func CreateBranch(root, name string) error {
	cmd := execCommand("git", "-C", root, "checkout", "-b", name)
	if out, err := cmd.CombinedOutput(); err != nil {
		if strings.Contains(string(out), "already exists") {
			return CheckoutBranch(root, name)
		}
		return fmt.Errorf("creating branch %s: %s", name, strings.TrimSpace(string(out)))
	}
	return nil
}

// CheckoutBranch checks out an existing branch.
func CheckoutBranch(root, name string) error {
	cmd := execCommand("git", "-C", root, "checkout", name)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("checking out %s: %s", name, strings.TrimSpace(string(out)))
	}
	return nil
}
