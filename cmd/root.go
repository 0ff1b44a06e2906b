package cmd

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "hr-matcher"
)

type Config struct {
	Embedding  *EmbeddingConfig  `mapstructure:"embedding"`
	Behavioral *BehavioralConfig `mapstructure:"behavioral"`
	Output     *OutputConfig     `mapstructure:"output"`
}

type EmbeddingConfig struct {
	Provider   string       `mapstructure:"provider"`
	Model      string       `mapstructure:"model"`
	APIKey     string       `mapstructure:"api-key"`
	APIKeyFile string       `mapstructure:"api-key-file"`
	BaseURL    string       `mapstructure:"base-url"`
	Dimensions int          `mapstructure:"dimensions"`
	Cache      *CacheConfig `mapstructure:"cache"`
}

type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type BehavioralConfig struct {
	ModelPath         string   `mapstructure:"model-path"`
	CommonRecruiters  []string `mapstructure:"common-recruiters"`
	RecruiterHistory  string   `mapstructure:"recruiter-history"`
	RecruiterMinCount int      `mapstructure:"recruiter-min-count"`
}

type OutputConfig struct {
	File  string `mapstructure:"file"`
	Excel string `mapstructure:"excel"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hr-matcher scores candidate and job pairs on skills, cultural fit and engagement",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	bindings := map[string]string{
		"embedding.provider":     "HR_MATCHER_EMBEDDING_PROVIDER",
		"embedding.model":        "HR_MATCHER_EMBEDDING_MODEL",
		"embedding.api-key-file": "HR_MATCHER_API_KEY_FILE",
		"embedding.base-url":     "HR_MATCHER_EMBEDDING_BASE_URL",
		"embedding.cache.addr":   "HR_MATCHER_REDIS_ADDR",
		"behavioral.model-path":  "HR_MATCHER_BEHAVIORAL_MODEL",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("embedding.provider", "gemini")
	viper.SetDefault("embedding.cache.addr", "localhost:6379")
	viper.SetDefault("behavioral.model-path", "models/behavioral.yaml")
	viper.SetDefault("behavioral.recruiter-min-count", 50)
	viper.SetDefault("output.file", "results.json")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hr-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Only the scoring commands need a config.
	if scoreCmd.CalledAs() == "" && matchCmd.CalledAs() == "" {
		return
	}

	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Defaults and environment are enough when no config file is present,
	// but a file that exists must parse.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
