package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-matcher/internal/logger"
	"github.com/spigell/hr-matcher/internal/pipeline"
	"github.com/spigell/hr-matcher/internal/profile"
	"github.com/spigell/hr-matcher/internal/records"
	"github.com/spigell/hr-matcher/internal/utils"
)

const resumePreview = 120

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a single candidate against a single job and print the result as JSON",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("payload", "p", "", "JSON file with a structured scoring request")
	matchCmd.Flags().String("candidate", "", "JSON file with extracted candidate features")
	matchCmd.Flags().String("job", "", "JSON file with extracted job features")
}

func match(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	pair, err := loadPair(cmd)
	if err != nil {
		logger.Fatal("loading match pair", zap.Error(err))
	}

	logger.Debug("matching",
		zap.String("candidate_id", pair.Candidate.ID),
		zap.String("job_id", pair.Job.ID),
		zap.String("resume", utils.TruncateForLog(pair.Candidate.Resume, resumePreview)),
	)

	built, err := buildScorers(ctx, config, logger)
	if err != nil {
		logger.Fatal("building scorers", zap.Error(err))
	}
	defer built.close()

	results, err := pipeline.Run(ctx, built.config, built.deps, pipeline.DefaultStages(), []profile.MatchPair{pair})
	if err != nil {
		logger.Fatal("scoring failed", zap.Error(err))
	}

	if err := printJSON(results[0]); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}
}

// loadPair reads either a structured payload or a pair of extraction files.
func loadPair(cmd *cobra.Command) (profile.MatchPair, error) {
	payloadFile, _ := cmd.Flags().GetString("payload")
	candidateFile, _ := cmd.Flags().GetString("candidate")
	jobFile, _ := cmd.Flags().GetString("job")

	if payloadFile != "" {
		data, err := records.LoadPayload(payloadFile)
		if err != nil {
			return profile.MatchPair{}, err
		}
		_, pair, err := profile.FromPayload(data)
		return pair, err
	}

	if candidateFile == "" || jobFile == "" {
		return profile.MatchPair{}, errors.New("either --payload or both --candidate and --job are required")
	}

	candidateData, err := records.LoadPayload(candidateFile)
	if err != nil {
		return profile.MatchPair{}, err
	}
	candidate, err := profile.CandidateFromExtraction(fileID(candidateFile), candidateData)
	if err != nil {
		return profile.MatchPair{}, fmt.Errorf("candidate %s: %w", candidateFile, err)
	}

	jobData, err := records.LoadPayload(jobFile)
	if err != nil {
		return profile.MatchPair{}, err
	}
	job, err := profile.JobFromExtraction(fileID(jobFile), jobData)
	if err != nil {
		return profile.MatchPair{}, fmt.Errorf("job %s: %w", jobFile, err)
	}

	return profile.MatchPair{Candidate: candidate, Job: job}, nil
}

func fileID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
