// Package git locates the git repository ironjira runs in.
package git

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/runoshun/ironjira/internal/domain"
)

// Client wraps an opened repository.
type Client struct {
	repo     *git.Repository
	repoRoot string // Worktree root (parent of .git); equals gitDir for bare repositories
	gitDir   string // The .git directory
}

// NewClient opens the repository containing dir, searching parent
// directories the way git does.
// Returns domain.ErrNotGitRepository when dir is not inside a repository.
func NewClient(dir string) (*Client, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, domain.ErrNotGitRepository
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	gitDir := ""
	if fs, ok := repo.Storer.(*filesystem.Storage); ok {
		gitDir = filepath.Clean(fs.Filesystem().Root())
	}

	repoRoot := gitDir
	wt, err := repo.Worktree()
	switch {
	case err == nil:
		repoRoot = filepath.Clean(wt.Filesystem.Root())
	case errors.Is(err, git.ErrIsBareRepository):
	default:
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	return &Client{
		repo:     repo,
		repoRoot: repoRoot,
		gitDir:   gitDir,
	}, nil
}

// RepoRoot returns the repository root directory.
func (c *Client) RepoRoot() string {
	return c.repoRoot
}

// GitDir returns the .git directory path.
func (c *Client) GitDir() string {
	return c.gitDir
}

// Repository returns the opened repository.
func (c *Client) Repository() *git.Repository {
	return c.repo
}
