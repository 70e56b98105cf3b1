package trends

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Publisher pushes freshly written artifacts somewhere visible. The runner
// calls it after every successful report write.
type Publisher interface {
	Publish(ctx context.Context, paths []string) error
}

// NopPublisher does nothing. Used when pushing is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, []string) error { return nil }

// GitPublisher commits artifact files and pushes them, so a static dashboard
// served from the repository picks them up.
type GitPublisher struct {
	dir    string
	remote string
	branch string
	log    *zap.Logger
}

// NewGitPublisher creates a publisher operating on the repository at dir,
// pushing to origin/main.
func NewGitPublisher(dir string) *GitPublisher {
	return &GitPublisher{
		dir:    dir,
		remote: "origin",
		branch: "main",
		log:    zap.NewNop(),
	}
}

// WithRemote overrides the remote and branch to push to.
func (p *GitPublisher) WithRemote(remote, branch string) *GitPublisher {
	p.remote = remote
	p.branch = branch
	return p
}

// WithLogger sets the logger.
func (p *GitPublisher) WithLogger(log *zap.Logger) *GitPublisher {
	p.log = log
	return p
}

// Publish stages the given paths, commits, and pushes. A clean tree after
// staging is not an error: it means the artifacts did not change.
func (p *GitPublisher) Publish(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if out, err := p.git(ctx, "add", path); err != nil {
			p.log.Warn("git add failed", zap.String("path", path), zap.String("output", out))
		}
	}

	status, err := p.git(ctx, "status", "--porcelain")
	if err != nil {
		return fmt.Errorf("git status: %w", err)
	}
	if strings.TrimSpace(status) == "" {
		p.log.Info("no artifact changes to publish")
		return nil
	}

	msg := "Update trend data - " + time.Now().Format("2006-01-02 15:04:05")
	if out, err := p.git(ctx, "commit", "-m", msg); err != nil {
		return fmt.Errorf("git commit: %w: %s", err, out)
	}
	if out, err := p.git(ctx, "push", p.remote, p.branch); err != nil {
		return fmt.Errorf("git push: %w: %s", err, out)
	}

	p.log.Info("published artifacts", zap.Int("files", len(paths)))
	return nil
}

func (p *GitPublisher) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = p.dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}
