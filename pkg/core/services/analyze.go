package services

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ChefStevePopp/ChefLife-sub003/internal/config"
	"github.com/ChefStevePopp/ChefLife-sub003/pkg/core/deltaengine"
)

// ExportSource fetches a vendor export tab rendered as CSV text.
// The sheetsclient.Client implements this interface.
type ExportSource interface {
	FetchExportCSV(spreadsheetID, tab string) (string, error)
}

// AnalyzeOptions selects the export source and optional filtering for one
// analysis run
type AnalyzeOptions struct {
	// ScheduledPath and WorkedPath are CSV files on disk; ignored when
	// FromSheets is set
	ScheduledPath string
	WorkedPath    string
	// FromSheets pulls both exports from the configured Sheet tabs
	FromSheets bool
	// Filter restricts the analysis to an inclusive date range
	Filter *deltaengine.DateRange
}

// Analyze acquires the two vendor exports, runs the delta engine with the
// configured thresholds and tracking rules, and returns the report.
// Excluded-date rules from the config are expanded over the report's date
// range and applied in a second engine pass; the engine is pure and cheap,
// so the first pass only establishes the range.
func Analyze(cfg *config.Config, sheets ExportSource, logger *zap.Logger, opts AnalyzeOptions) (*deltaengine.Report, error) {
	scheduledCSV, workedCSV, err := acquireExports(cfg, sheets, logger, opts)
	if err != nil {
		return nil, err
	}

	input := deltaengine.NewInput(scheduledCSV, workedCSV)
	input.Thresholds = cfg.EngineThresholds()
	input.Tracking = cfg.EngineTracking()
	input.SecurityLevels = cfg.SecurityLevels
	input.Filter = opts.Filter

	logger.Info("Running delta analysis",
		zap.Int("scheduled_bytes", len(scheduledCSV)),
		zap.Int("worked_bytes", len(workedCSV)))

	report, err := deltaengine.Analyze(input)
	if err != nil {
		return nil, fmt.Errorf("delta analysis failed: %w", err)
	}
	if len(report.Errors) > 0 {
		logger.Warn("Analysis returned structural errors", zap.Strings("errors", report.Errors))
		return report, nil
	}

	if len(cfg.ExcludedDateRules) > 0 {
		excluded, err := cfg.ExpandExcludedDates(report.DateRange)
		if err != nil {
			return nil, fmt.Errorf("failed to expand excluded dates: %w", err)
		}
		if len(excluded) > 0 {
			logger.Debug("Applying excluded dates", zap.Int("count", len(excluded)))
			input.ExcludedDates = excluded
			report, err = deltaengine.Analyze(input)
			if err != nil {
				return nil, fmt.Errorf("delta analysis failed: %w", err)
			}
		}
	}

	logger.Info("Analysis complete",
		zap.Int("scheduled", report.ScheduledCount),
		zap.Int("worked", report.WorkedCount),
		zap.Int("matched", report.MatchedCount),
		zap.Int("no_shows", report.NoShowCount),
		zap.Int("unscheduled", report.UnscheduledCount),
		zap.Int("exempt", report.ExemptCount),
		zap.Int("filtered", report.FilteredCount))

	return report, nil
}

// acquireExports reads the two exports from disk or from the configured
// Google Sheet tabs
func acquireExports(cfg *config.Config, sheets ExportSource, logger *zap.Logger, opts AnalyzeOptions) (string, string, error) {
	if opts.FromSheets {
		if cfg.Sheets == nil {
			return "", "", fmt.Errorf("sheets source requested but no sheets config present")
		}
		if sheets == nil {
			return "", "", fmt.Errorf("sheets source requested but no sheets client available")
		}

		logger.Info("Fetching exports from Google Sheets",
			zap.String("spreadsheet_id", cfg.Sheets.SpreadsheetID),
			zap.String("scheduled_tab", cfg.Sheets.ScheduledTab),
			zap.String("worked_tab", cfg.Sheets.WorkedTab))

		scheduledCSV, err := sheets.FetchExportCSV(cfg.Sheets.SpreadsheetID, cfg.Sheets.ScheduledTab)
		if err != nil {
			return "", "", fmt.Errorf("failed to fetch scheduled export: %w", err)
		}
		workedCSV, err := sheets.FetchExportCSV(cfg.Sheets.SpreadsheetID, cfg.Sheets.WorkedTab)
		if err != nil {
			return "", "", fmt.Errorf("failed to fetch worked export: %w", err)
		}
		return scheduledCSV, workedCSV, nil
	}

	logger.Debug("Reading export files",
		zap.String("scheduled", opts.ScheduledPath),
		zap.String("worked", opts.WorkedPath))

	scheduledCSV, err := os.ReadFile(opts.ScheduledPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read scheduled export: %w", err)
	}
	workedCSV, err := os.ReadFile(opts.WorkedPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read worked export: %w", err)
	}
	return string(scheduledCSV), string(workedCSV), nil
}
