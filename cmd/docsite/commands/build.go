package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/config"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/storage"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Content     string `short:"r" help:"Content root (overrides content.root)" type:"path"`
	Output      string `short:"o" help:"Manifest artifact path (overrides manifest.output); .db/.sqlite selects SQLite" type:"path"`
	OnCollision string `name:"on-collision" help:"Alias collision policy (warn|error), overrides manifest.on_collision"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadedConfig()
	if err != nil {
		return err
	}
	if err := b.apply(cfg); err != nil {
		return err
	}

	m, err := newBuilder(cfg, metrics.NoopRecorder{}).Build(g.Ctx, cfg.Content.Root)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Manifest.Output)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryManifest, "failed to open manifest store").
			WithContext("path", cfg.Manifest.Output).
			Build()
	}
	defer func() { _ = store.Close() }()
	if err := store.Save(g.Ctx, m); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write manifest artifact").
			WithContext("path", cfg.Manifest.Output).
			Build()
	}

	_, _ = fmt.Fprintf(g.Out, "Manifest written to %s (%d documents, %d alias keys, %d collisions)\n",
		cfg.Manifest.Output, m.Len(), m.AliasCount(), len(m.Collisions))
	return nil
}

func (b *BuildCmd) apply(cfg *config.Config) error {
	if b.Content != "" {
		cfg.Content.Root = b.Content
	}
	if b.Output != "" {
		cfg.Manifest.Output = b.Output
	}
	if b.OnCollision != "" {
		policy, err := config.ParseCollisionPolicy(b.OnCollision)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid --on-collision").
				WithContext("value", b.OnCollision).
				Build()
		}
		cfg.Manifest.OnCollision = policy
	}
	return nil
}
