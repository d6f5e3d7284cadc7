// Package gitinfo resolves the library checkout's HEAD commit so generated
// source links can be pinned to the exact revision they were built from.
package gitinfo

import (
	"fmt"

	git "github.com/go-git/go-git/v5"
)

const shortHashLen = 7

// HeadShort returns the abbreviated HEAD commit hash of the repository at
// or above root. Non-repositories return an error; callers fall back to
// the default branch ref.
func HeadShort(root string) (string, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}

	return head.Hash().String()[:shortHashLen], nil
}
