package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepoWithCommit(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()

	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "lib.rs"), []byte("pub mod utils;\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("lib.rs")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return root, hash.String()
}

func TestHeadShort(t *testing.T) {
	root, full := initRepoWithCommit(t)

	short, err := HeadShort(root)
	require.NoError(t, err)
	assert.Len(t, short, 7)
	assert.Equal(t, full[:7], short)
}

func TestHeadShort_DetectsDotGitAbove(t *testing.T) {
	root, full := initRepoWithCommit(t)
	nested := filepath.Join(root, "docs", "book")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	short, err := HeadShort(nested)
	require.NoError(t, err)
	assert.Equal(t, full[:7], short)
}

func TestHeadShort_NotARepository(t *testing.T) {
	_, err := HeadShort(t.TempDir())
	require.Error(t, err)
}
