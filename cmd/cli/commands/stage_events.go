package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChefStevePopp/ChefLife-sub003/pkg/core/services"
)

// StageEventsCmd creates the stageEvents command
func StageEventsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stageEvents [scheduled.csv worked.csv]",
		Short: "Analyze exports and stage detected events for manager review",
		Long: `Run the delta analysis and persist every detected event to the staged
events table. Events already staged for the same employee, date, and type
are skipped, so re-running the same exports is safe.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := analyzeOptions(cmd, args)
			if err != nil {
				return err
			}

			report, err := runAnalysis(app, cmd, opts)
			if err != nil {
				return err
			}
			if len(report.Errors) > 0 {
				printReport(report)
				return fmt.Errorf("analysis returned errors; nothing staged")
			}

			dryRun, _ := cmd.Flags().GetBool("dry-run")

			store, err := app.Database()
			if err != nil {
				return err
			}

			result, err := services.StageEvents(app.Ctx, store, app.Logger, report, dryRun)
			if err != nil {
				return err
			}

			if result.DryRun {
				fmt.Printf("\nDry run: %d events would be staged, %d duplicates skipped\n\n",
					len(result.Staged), result.SkippedDuplicates)
			} else {
				fmt.Printf("\n✓ Staged %d events (%d duplicates skipped)\n\n",
					len(result.Staged), result.SkippedDuplicates)
			}

			for _, event := range result.Staged {
				fmt.Printf("  %s  %-22s %-20s %+.1f pts  %s\n",
					event.Date, event.EventType, event.EmployeeName,
					event.SuggestedPoints, event.Description)
			}
			if len(result.Staged) > 0 {
				fmt.Println()
			}

			return nil
		},
	}

	addAnalyzeFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "Analyze and print what would be staged without writing")

	return cmd
}
