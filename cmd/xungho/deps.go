package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ersonp/xungho/internal/application/handlers"
	"github.com/ersonp/xungho/internal/domain/ports"
	"github.com/ersonp/xungho/internal/domain/services"
	"github.com/ersonp/xungho/internal/infrastructure/config"
	"github.com/ersonp/xungho/internal/infrastructure/logging"
	"github.com/ersonp/xungho/internal/infrastructure/metrics"
	"github.com/ersonp/xungho/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config              *config.Config
	TreeName            string
	PersonHandler       *handlers.PersonHandler
	RelationshipHandler *handlers.RelationshipHandler
	KinshipHandler      *handlers.KinshipHandler
	ImportHandler       *handlers.ImportHandler
}

// withDeps loads config, opens the selected tree's store and builds the
// handlers, then calls the provided function. It handles cleanup and the
// metrics flush automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !globalVerbose {
		logging.Setup(os.Stderr, cfg.Log.Level)
	}

	flush := metrics.EnableTextfile(cfg.Metrics.Textfile)
	defer func() {
		if err := flush(); err != nil {
			slog.Warn("flushing metrics", slog.String("error", err.Error()))
		}
	}()

	trees, err := config.LoadTrees(cwd)
	if err != nil {
		return fmt.Errorf("loading trees: %w", err)
	}

	name, err := selectTree(trees, globalTree)
	if err != nil {
		return err
	}

	entry, err := trees.Get(name)
	if err != nil {
		return err
	}

	opts, err := handlers.KinshipOptions(cfg.Kinship, entry.Region)
	if err != nil {
		return err
	}

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: config.SQLitePathForTree(cwd, name)})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	family := services.NewFamilyService(repo)

	deps := &Deps{
		Config:              cfg,
		TreeName:            name,
		PersonHandler:       handlers.NewPersonHandler(family),
		RelationshipHandler: handlers.NewRelationshipHandler(family),
		KinshipHandler:      handlers.NewKinshipHandler(family, services.NewKinshipService(repo), opts),
		ImportHandler:       handlers.NewImportHandler(services.NewImportService(repo), family),
	}

	return fn(deps)
}

// selectTree picks the tree named by the --tree flag, or the only
// registered tree when the flag is empty.
func selectTree(trees *config.TreesConfig, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	names := trees.Names()
	switch len(names) {
	case 0:
		return "", errors.New("no family trees configured (run 'xungho trees create NAME' first)")
	case 1:
		return names[0], nil
	default:
		return "", errors.New("tree is required (use --tree flag)")
	}
}

// openSQLiteStore opens the family store used by tree creation.
func openSQLiteStore(path string) (ports.FamilyStore, error) {
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: path})
	if err != nil {
		return nil, err
	}
	return repo, nil
}
