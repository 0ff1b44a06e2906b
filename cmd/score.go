package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-matcher/internal/logger"
	"github.com/spigell/hr-matcher/internal/pipeline"
	"github.com/spigell/hr-matcher/internal/records"
)

const (
	PromptReportByStatus = "Report by status"
	PromptResultsToFile  = "Dump results to file"
	PromptExportExcel    = "Export to Excel"
	PromptExit           = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptReportByStatus, PromptResultsToFile, PromptExportExcel, PromptExit},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a batch of candidate and job pairs",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("input", "i", "", "JSON or JSONL file with one merged candidate and job row per record")
	scoreCmd.Flags().StringP("output", "o", "", "file for the scored results (default is output.file from config)")
	scoreCmd.Flags().String("excel", "", "also export the ranked results to this xlsx workbook")
	scoreCmd.Flags().BoolP("auto-approve", "y", false, "do not show the interactive menu after scoring")
	scoreCmd.Flags().StringSlice("skip-stage", nil, "stages to skip: skills, cultural, behavioral")

	if err := scoreCmd.MarkFlagRequired("input"); err != nil {
		log.Fatalf("marking input flag: %v", err)
	}

	viper.BindPFlag("output.file", scoreCmd.Flags().Lookup("output"))
	viper.BindPFlag("output.excel", scoreCmd.Flags().Lookup("excel"))
}

func score(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hr-matcher", zap.String("version", version))

	input, _ := cmd.Flags().GetString("input")
	pairs, err := records.LoadPairs(input)
	if err != nil {
		logger.Fatal("loading match pairs", zap.Error(err))
	}

	logger.Info("loaded match pairs", zap.String("input", input), zap.Int("count", len(pairs)))

	if len(pairs) == 0 {
		logger.Info("exiting", zap.String("reason", "no pairs to score"))
		return
	}

	built, err := buildScorers(ctx, config, logger)
	if err != nil {
		logger.Fatal("building scorers", zap.Error(err))
	}
	defer built.close()

	stages := pipeline.DefaultStages()
	skipped, _ := cmd.Flags().GetStringSlice("skip-stage")
	for _, name := range skipped {
		if !pipeline.DisableByName(stages, strings.TrimSpace(name), "skipped by flag") {
			logger.Fatal("unknown stage", zap.String("stage", name))
		}
	}

	scored, err := pipeline.Run(ctx, built.config, built.deps, stages, pairs)
	if err != nil {
		logger.Fatal("scoring failed", zap.Error(err))
	}

	for _, status := range pipeline.Describe(stages) {
		logger.Debug("stage",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	results := records.NewResults(scored)
	results.SortByOverall()

	logSummary(logger, results)

	if err := writeResults(results, config.Output, logger); err != nil {
		logger.Fatal("writing results", zap.Error(err))
	}

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")
	if autoApprove {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func logSummary(log *zap.Logger, results *records.Results) {
	log.Info("scored match pairs",
		zap.String(logger.FieldRunID, results.RunID),
		zap.Int("count", results.Len()),
		zap.Any("by_status", results.CountByStatus()),
	)
}

func writeResults(results *records.Results, output *OutputConfig, logger *zap.Logger) error {
	if output == nil {
		return nil
	}

	if output.File != "" {
		if err := results.ToFile(output.File); err != nil {
			return err
		}
		logger.Info("results written", zap.String("filename", output.File))
	}

	if output.Excel != "" {
		filename, err := results.ExportExcel(output.Excel)
		if err != nil {
			return err
		}
		logger.Info("results exported", zap.String("filename", filename))
	}

	return nil
}

func handleAction(action string, logger *zap.Logger, results *records.Results) error {
	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReportByStatus:
		pretty, _ := json.MarshalIndent(results.ReportByStatus(), "", "  ")
		logger.Info(string(pretty), zap.Int("results count", results.Len()))
		return nil
	case PromptResultsToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExportExcel:
		filename, err := results.ExportExcel(fmt.Sprintf("%s-%s.xlsx", app, results.RunID))
		if err != nil {
			return fmt.Errorf("export results: %w", err)
		}
		logger.Info("exported results", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
