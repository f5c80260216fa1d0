package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pocket-classroom/internal/app"
	"pocket-classroom/internal/config"
)

// NewExportCmd writes the full snapshot to a file (default: the same fixed
// filename the download endpoint offers).
func NewExportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export lessons and chat to a snapshot file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.ExportFilename
			if len(args) == 1 {
				path = args[0]
			}
			return runExport(cmd.Context(), *configPath, path)
		},
	}
}

// NewImportCmd replaces stored state from a snapshot file.
func NewImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Import a snapshot file, replacing lessons and chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), *configPath, args[0])
		},
	}
}

func runExport(ctx context.Context, configPath, outPath string) error {
	classroom, cleanup, err := loadClassroom(ctx, configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	raw, err := classroom.EncodeSnapshot()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	log.Printf("exported snapshot to %s", outPath)
	return nil
}

func runImport(ctx context.Context, configPath, inPath string) error {
	classroom, cleanup, err := loadClassroom(ctx, configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	raw, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if err := classroom.ImportSnapshot(ctx, raw); err != nil {
		return err
	}
	log.Printf("imported snapshot from %s", inPath)
	return nil
}

func loadClassroom(ctx context.Context, configPath string) (*app.Classroom, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, func() {}, err
	}
	st, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, cleanup, err
	}
	classroom, err := app.Load(ctx, st, app.Options{Sender: cfg.Classroom.Sender})
	if err != nil {
		return nil, cleanup, err
	}
	if warning := classroom.Warning(); warning != "" {
		log.Printf("warning: %s", warning)
	}
	return classroom, cleanup, nil
}
