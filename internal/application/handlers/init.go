// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ersonp/xungho/internal/domain/kinship"
	"github.com/ersonp/xungho/internal/domain/ports"
	"github.com/ersonp/xungho/internal/infrastructure/config"
)

// StoreOpener opens the family store at the given database path.
type StoreOpener func(path string) (ports.FamilyStore, error)

// TreeHandler handles family tree lifecycle: creation, listing and removal.
type TreeHandler struct {
	openStore StoreOpener
}

// NewTreeHandler creates a new tree handler.
func NewTreeHandler(openStore StoreOpener) *TreeHandler {
	return &TreeHandler{openStore: openStore}
}

// CreateTreeOptions configures a new tree.
type CreateTreeOptions struct {
	Description string
	Region      string // Empty uses the configured default
}

// CreateTreeResult contains the result of creating a tree.
type CreateTreeResult struct {
	ConfigPath  string
	DBPath      string
	Initialized bool // True when the config directory was created
}

// TreeInfo describes a registered tree.
type TreeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Region      string `json:"region,omitempty"`
	DBPath      string `json:"db_path"`
}

// HandleCreate registers a tree and creates its database schema. The
// config directory is initialized on first use.
func (h *TreeHandler) HandleCreate(ctx context.Context, basePath, name string, opts CreateTreeOptions) (*CreateTreeResult, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("tree name is required")
	}
	if opts.Region != "" {
		if _, err := kinship.ParseRegion(opts.Region); err != nil {
			return nil, err
		}
	}

	initialized := !config.Exists(basePath)
	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	trees, err := config.LoadTrees(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading trees: %w", err)
	}
	if trees.Exists(name) {
		return nil, fmt.Errorf("tree %q already exists", name)
	}
	dir := config.SanitizeTreeName(name)
	for other, entry := range trees.Trees {
		if entry.Dir == dir {
			return nil, fmt.Errorf("tree %q already uses directory %q", other, dir)
		}
	}

	dbPath := config.SQLitePathForTree(basePath, name)
	if err := os.MkdirAll(config.TreeDir(basePath, name), 0755); err != nil {
		return nil, fmt.Errorf("creating tree directory: %w", err)
	}
	store, err := h.openStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening family store: %w", err)
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	trees.Add(name, config.TreeEntry{
		Dir:         dir,
		Description: opts.Description,
		Region:      opts.Region,
	})
	if err := trees.Save(basePath); err != nil {
		return nil, fmt.Errorf("saving trees: %w", err)
	}

	return &CreateTreeResult{
		ConfigPath:  config.ConfigFilePath(basePath),
		DBPath:      dbPath,
		Initialized: initialized,
	}, nil
}

// HandleList returns the registered trees sorted by name.
func (h *TreeHandler) HandleList(basePath string) ([]TreeInfo, error) {
	trees, err := config.LoadTrees(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading trees: %w", err)
	}

	infos := make([]TreeInfo, 0, len(trees.Trees))
	for _, name := range trees.Names() {
		entry := trees.Trees[name]
		infos = append(infos, TreeInfo{
			Name:        name,
			Description: entry.Description,
			Region:      entry.Region,
			DBPath:      config.SQLitePathForTree(basePath, name),
		})
	}
	return infos, nil
}

// HandleDelete unregisters a tree and removes its directory.
func (h *TreeHandler) HandleDelete(basePath, name string) error {
	trees, err := config.LoadTrees(basePath)
	if err != nil {
		return fmt.Errorf("loading trees: %w", err)
	}
	if _, err := trees.Get(name); err != nil {
		return err
	}

	if err := os.RemoveAll(config.TreeDir(basePath, name)); err != nil {
		return fmt.Errorf("removing tree directory: %w", err)
	}

	trees.Remove(name)
	if err := trees.Save(basePath); err != nil {
		return fmt.Errorf("saving trees: %w", err)
	}
	return nil
}
