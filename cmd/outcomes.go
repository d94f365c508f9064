package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campusplan/timegrid/config"
	"github.com/campusplan/timegrid/core/schedule/logging"
)

var (
	outcomesRunID  string
	outcomesDept   string
	outcomesStatus string
)

var outcomesCmd = &cobra.Command{
	Use:   "outcomes",
	Short: "List stored session outcomes",
	RunE:  runOutcomes,
}

func init() {
	outcomesCmd.Flags().StringVar(&outcomesRunID, "run", "", "filter by run id")
	outcomesCmd.Flags().StringVar(&outcomesDept, "department", "", "filter by department")
	outcomesCmd.Flags().StringVar(&outcomesStatus, "status", "", "filter by status (scheduled, failed, not-scheduled)")
	rootCmd.AddCommand(outcomesCmd)
}

func runOutcomes(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Outcomes.Backend == "none" {
		return fmt.Errorf("outcome store disabled in configuration")
	}
	status, err := canonicalStatus(outcomesStatus)
	if err != nil {
		return err
	}
	store, err := openStore(cfg.Outcomes)
	if err != nil {
		return fmt.Errorf("open outcome store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error while closing store: %v\n", err)
		}
	}()
	records, err := store.Query(cmd.Context(), logging.Query{
		RunID:      outcomesRunID,
		Department: outcomesDept,
		Status:     status,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, r := range records {
		when := ""
		if r.Day != "" {
			when = fmt.Sprintf(" %s %s", r.Day, r.StartTime)
		}
		fmt.Fprintf(out, "%s\t%s_%s\t%s %s\t%s%s\n",
			r.RunID, r.Department, r.Semester, r.Code, r.Label, r.Status, when)
	}
	fmt.Fprintf(out, "%d records\n", len(records))
	return nil
}

func openStore(cfg config.OutcomesConfig) (logging.Store, error) {
	if cfg.Backend == "sqlite" {
		return logging.NewSQLiteStore(cfg.Path)
	}
	return logging.NewJSONLStore(cfg.Path)
}

func canonicalStatus(s string) (string, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", " ")) {
	case "":
		return "", nil
	case "scheduled":
		return "Scheduled", nil
	case "failed":
		return "Failed", nil
	case "not scheduled":
		return "Not Scheduled", nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}
