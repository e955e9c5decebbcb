package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlevinson-dev/changegov/internal/semver"
)

// chdir switches the working directory to dir and restores the previous
// one when the test finishes (t.Chdir requires Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

// initRepo creates a repository with one commit in dir and returns it.
func initRepo(t *testing.T, dir string) *git.Repository {
	t.Helper()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("file.txt")
	require.NoError(t, err)

	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return repo
}

func TestLatestVersionTag(t *testing.T) {
	dir := t.TempDir()
	repo := initRepo(t, dir)
	chdir(t, dir)

	head, err := repo.Head()
	require.NoError(t, err)

	for _, tag := range []string{"v1.2.3", "v1.10.0", "v0.4.0", "not-a-version"} {
		_, err := repo.CreateTag(tag, head.Hash(), nil)
		require.NoError(t, err)
	}

	v, found, err := LatestVersionTag()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, semver.Version{Major: 1, Minor: 10}, v)
}

func TestLatestVersionTag_NoTags(t *testing.T) {
	dir := t.TempDir()
	initRepo(t, dir)
	chdir(t, dir)

	_, found, err := LatestVersionTag()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCurrentBranch(t *testing.T) {
	dir := t.TempDir()
	initRepo(t, dir)
	chdir(t, dir)

	branch, err := CurrentBranch()
	require.NoError(t, err)
	assert.NotEmpty(t, branch)
}

func TestRepoRoot(t *testing.T) {
	dir := t.TempDir()
	initRepo(t, dir)

	sub := filepath.Join(dir, "nested", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	chdir(t, sub)

	root, err := RepoRoot()
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOpenRepo_NotARepository(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := CurrentBranch()
	require.Error(t, err)
}
