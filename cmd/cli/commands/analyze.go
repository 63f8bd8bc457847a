package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ChefStevePopp/ChefLife-sub003/pkg/core/deltaengine"
	"github.com/ChefStevePopp/ChefLife-sub003/pkg/core/services"
)

// AnalyzeCmd creates the analyze command
func AnalyzeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [scheduled.csv worked.csv]",
		Short: "Reconcile scheduled and worked shift exports and report deltas",
		Long: `Reconcile two vendor exports (scheduled shifts and worked shifts) and
report attendance deltas: tardiness, early departures, no-shows, and
unscheduled work. Exports are read from the given CSV files, or from the
configured Google Sheet tabs with --from-sheets.`,
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

			printReport(report)
			return nil
		},
	}

	addAnalyzeFlags(cmd)
	return cmd
}

// addAnalyzeFlags registers the flags shared by analyze and stageEvents
func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("from-sheets", false, "Fetch both exports from the configured Google Sheet tabs")
	cmd.Flags().String("start", "", "Inclusive start of the date range filter (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "Inclusive end of the date range filter (YYYY-MM-DD)")
	cmd.Flags().String("security-map", "", "YAML file mapping employee id to security level")
}

// analyzeOptions builds service options from flags and positional args
func analyzeOptions(cmd *cobra.Command, args []string) (services.AnalyzeOptions, error) {
	fromSheets, _ := cmd.Flags().GetBool("from-sheets")

	var opts services.AnalyzeOptions
	if fromSheets {
		if len(args) != 0 {
			return opts, fmt.Errorf("--from-sheets takes no file arguments")
		}
		opts.FromSheets = true
	} else {
		if len(args) != 2 {
			return opts, fmt.Errorf("expected <scheduled.csv> <worked.csv> (or --from-sheets)")
		}
		opts.ScheduledPath = args[0]
		opts.WorkedPath = args[1]
	}

	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	if start != "" || end != "" {
		opts.Filter = &deltaengine.DateRange{Start: start, End: end}
	}

	return opts, nil
}

// runAnalysis wires the optional sheets source and security map, then runs
// the analyze service
func runAnalysis(app *AppContext, cmd *cobra.Command, opts services.AnalyzeOptions) (*deltaengine.Report, error) {
	var source services.ExportSource
	if opts.FromSheets {
		client, err := app.SheetsClient()
		if err != nil {
			return nil, err
		}
		source = client
	}

	mapPath, _ := cmd.Flags().GetString("security-map")
	if mapPath != "" {
		levels, err := loadSecurityMap(mapPath)
		if err != nil {
			return nil, err
		}
		merged := make(map[string]int, len(app.Cfg.SecurityLevels)+len(levels))
		for id, level := range app.Cfg.SecurityLevels {
			merged[id] = level
		}
		for id, level := range levels {
			merged[id] = level
		}
		app.Cfg.SecurityLevels = merged
	}

	return services.Analyze(app.Cfg, source, app.Logger, opts)
}

func loadSecurityMap(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read security map: %w", err)
	}

	var levels map[string]int
	if err := yaml.Unmarshal(data, &levels); err != nil {
		return nil, fmt.Errorf("failed to parse security map: %w", err)
	}

	return levels, nil
}

// printReport renders counts and the delta table
func printReport(report *deltaengine.Report) {
	if len(report.Errors) > 0 {
		fmt.Println("\nAnalysis failed with errors:")
		for _, msg := range report.Errors {
			fmt.Printf("  - %s\n", msg)
		}
		return
	}

	fmt.Printf("\nDate range: %s to %s\n\n", report.DateRange.Start, report.DateRange.End)

	counts := table.NewWriter()
	counts.SetOutputMirror(os.Stdout)
	counts.AppendHeader(table.Row{"Scheduled", "Worked", "Matched", "No-Shows", "Unscheduled", "Exempt", "Filtered"})
	counts.AppendRow(table.Row{
		report.ScheduledCount, report.WorkedCount, report.MatchedCount,
		report.NoShowCount, report.UnscheduledCount, report.ExemptCount,
		report.FilteredCount,
	})
	counts.Render()

	if len(report.Deltas) == 0 {
		fmt.Println("\nNo deltas detected.")
		return
	}

	deltas := table.NewWriter()
	deltas.SetOutputMirror(os.Stdout)
	deltas.AppendHeader(table.Row{"Date", "Employee", "Status", "Start Var", "End Var", "Events"})
	for _, delta := range report.Deltas {
		deltas.AppendRow(table.Row{
			delta.Date,
			delta.EmployeeName,
			delta.Status,
			formatVariance(delta.StartVarianceMin),
			formatVariance(delta.EndVarianceMin),
			formatEvents(delta.Events),
		})
	}
	deltas.Render()
	fmt.Println()
}

func formatVariance(variance *int) string {
	if variance == nil {
		return "-"
	}
	return fmt.Sprintf("%+d min", *variance)
}

func formatEvents(events []deltaengine.DetectedEvent) string {
	if len(events) == 0 {
		return "-"
	}
	out := ""
	for i, event := range events {
		if i > 0 {
			out += "; "
		}
		out += fmt.Sprintf("%s (%+.1f pts)", event.Type, event.SuggestedPoints)
	}
	return out
}
