package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lumina/internal/bootstrap"
	"lumina/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "lumina",
		Short:         "Distraction-free terminal document reader",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default ~/.lumina)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newLibraryCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the lumina reader UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newLibraryCmd(dataDir *string) *cobra.Command {
	library := &cobra.Command{Use: "library", Short: "Manage the stored document library"}

	importCmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Store a document in the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.LibraryCLI.Import(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !out.Stored {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s was not saved (storage unavailable)\n", out.Name)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%s, %s)\n",
				out.Document.Name, out.Document.ID, out.Document.SizeLabel)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored documents, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			docs, err := app.LibraryCLI.List(context.Background())
			if err != nil {
				return err
			}
			for _, doc := range docs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-30s %8s  %s\n",
					doc.ID, doc.Name, doc.SizeLabel, doc.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.LibraryCLI.Remove(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}

	library.AddCommand(importCmd, listCmd, rmCmd)
	return library
}
