package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ersonp/xungho/internal/domain/services"
	"github.com/ersonp/xungho/internal/infrastructure/parsers"
)

// ImportHandler handles importing and exporting family tree files.
type ImportHandler struct {
	service *services.ImportService
	family  *services.FamilyService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService, family *services.FamilyService) *ImportHandler {
	return &ImportHandler{
		service: service,
		family:  family,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format     string                    // "json", "yaml", "csv", or "auto"
	DryRun     bool                      // Validate without saving
	OnConflict services.ConflictStrategy // How to handle existing people
}

// Handle imports a family tree from a file.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*services.ImportResult, error) {
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}

	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	tree, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	if len(tree.People) == 0 && len(tree.Relationships) == 0 {
		return &services.ImportResult{}, nil
	}

	return h.service.Import(ctx, tree, services.ImportOptions{
		DryRun:     opts.DryRun,
		OnConflict: opts.OnConflict,
	})
}

// HandleExport writes the whole tree to w in the given format.
func (h *ImportHandler) HandleExport(ctx context.Context, w io.Writer, format string) error {
	people, edges, err := h.family.Snapshot(ctx)
	if err != nil {
		return err
	}
	return parsers.Write(w, format, parsers.FromEntities(people, edges))
}
