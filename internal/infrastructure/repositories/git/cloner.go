package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	gitConfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	gitHTTP "github.com/go-git/go-git/v5/plumbing/transport/http"
	logger "github.com/sirupsen/logrus"
)

const tokenUsername = "x-access-token"

// CloneRequest describes a tagged checkout.
type CloneRequest struct {
	URL    string
	Dir    string
	Branch string // optional; empty keeps the cloned HEAD
	Tag    string
	Token  string // optional
}

// Cloner produces a working tree of a repository at an exact tag.
type Cloner interface {
	CloneTag(ctx context.Context, req CloneRequest) error
}

// GoGitCloner implements Cloner with go-git, without shelling out.
type GoGitCloner struct{}

// NewGoGitCloner creates a GoGitCloner.
func NewGoGitCloner() *GoGitCloner {
	return &GoGitCloner{}
}

// CloneTag clones the repository, checks out the default branch, fetches all
// tags and finally checks out the tag. The tag may not be reachable from the
// branch fetched by the clone, hence the explicit tag fetch.
func (it *GoGitCloner) CloneTag(ctx context.Context, req CloneRequest) error {
	auth := authFor(req.Token)

	repo, err := gogit.PlainCloneContext(ctx, req.Dir, false, &gogit.CloneOptions{
		URL:  req.URL,
		Auth: auth,
	})
	if err != nil {
		return fmt.Errorf("failed to clone %s: %w", req.URL, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	if req.Branch != "" {
		if checkoutErr := worktree.Checkout(&gogit.CheckoutOptions{
			Branch: plumbing.NewBranchReferenceName(req.Branch),
		}); checkoutErr != nil {
			return fmt.Errorf("failed to check out branch %q: %w", req.Branch, checkoutErr)
		}
	}

	fetchErr := repo.FetchContext(ctx, &gogit.FetchOptions{
		RefSpecs: []gitConfig.RefSpec{"+refs/tags/*:refs/tags/*"},
		Tags:     gogit.AllTags,
		Auth:     auth,
	})
	if fetchErr != nil && !errors.Is(fetchErr, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch tags: %w", fetchErr)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(plumbing.NewTagReferenceName(req.Tag)))
	if err != nil {
		return fmt.Errorf("tag %q not found: %w", req.Tag, err)
	}
	logger.Debugf("[git] Tag %s resolves to %s", req.Tag, hash)

	if checkoutErr := worktree.Checkout(&gogit.CheckoutOptions{Hash: *hash}); checkoutErr != nil {
		return fmt.Errorf("failed to check out tag %q: %w", req.Tag, checkoutErr)
	}
	return nil
}

func authFor(token string) transport.AuthMethod {
	if token == "" {
		return nil
	}
	return &gitHTTP.BasicAuth{Username: tokenUsername, Password: token}
}
