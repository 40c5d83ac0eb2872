package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tag_tracker_go/internal/config"
	"tag_tracker_go/internal/repository"
	"tag_tracker_go/internal/service"
	"tag_tracker_go/pkg/database"
	"tag_tracker_go/pkg/log"

	"github.com/spf13/cobra"
)

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "seed <csv-file>",
		Short: "Import color formulas from a CSV file",
		Long: `Import color formulas from a CSV file with the columns

  Card No, Color Name, Color Number, Season, Formula 1, Formula 2, Formula 3

Rows whose color number is already stored are skipped. The database is
chosen the same way as for the server (DATABASE_URL or config file).`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = config.Path()
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			log.Init(cfg.Log.Level, "console", "")
			defer log.Sync()

			return runSeed(cfg, args[0], yes, in, out)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default is $TAG_TRACKER_CONFIG or configs/config.yaml)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runSeed(cfg *config.Config, csvPath string, yes bool, in io.Reader, out io.Writer) error {
	f, err := os.Open(csvPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file %q not found", csvPath)
		}
		return err
	}
	defer f.Close()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	fmt.Fprintf(out, "Reading CSV file: %s\n", csvPath)
	fmt.Fprintf(out, "Database: %s\n\n", db.Dialector.Name())

	if !yes {
		fmt.Fprint(out, "Proceed with seeding? (yes/no): ")
		answer, _ := bufio.NewReader(in).ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	report, err := service.NewColorFormulaService(repository.NewColorFormulaRepository(db)).Import(f)
	if err != nil {
		return err
	}

	for _, row := range report.Rows {
		switch row.Status {
		case service.RowAdded:
			fmt.Fprintf(out, "Added: %s - %s\n", row.ColorNumber, row.ColorName)
		case service.RowSkipped:
			fmt.Fprintf(out, "Skipping %s - %s (%s)\n", row.ColorNumber, row.ColorName, row.Reason)
		default:
			fmt.Fprintf(out, "Error on line %d (card %s): %s\n", row.Line, orUnknown(row.CardNo), row.Reason)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Seeding complete!")
	fmt.Fprintf(out, "   Records added: %d\n", report.Added)
	fmt.Fprintf(out, "   Records skipped: %d\n", report.Skipped)
	fmt.Fprintf(out, "   Records failed: %d\n", report.Failed)
	fmt.Fprintf(out, "   Total in database: %d\n", report.Total)
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
