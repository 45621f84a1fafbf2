package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/analysis"
	"github.com/spigell/resume-scorer/internal/embedding"
	"github.com/spigell/resume-scorer/internal/jobsource"
	"github.com/spigell/resume-scorer/internal/logger"
	"github.com/spigell/resume-scorer/internal/ranking"
	"github.com/spigell/resume-scorer/internal/server"
)

const (
	app       = "resume-scorer"
	envPrefix = "RESUME_SCORER"
)

type Config struct {
	Embedding embedding.Config `mapstructure:"embedding"`
	Keywords  KeywordsConfig   `mapstructure:"keywords"`
	Server    server.Config    `mapstructure:"server"`
	JobSource jobsource.Config `mapstructure:"jobsource"`
	Rank      ranking.Config   `mapstructure:"rank"`
}

type KeywordsConfig struct {
	LexiconFile string `mapstructure:"lexicon-file"`
}

func (c *Config) Analysis() analysis.Config {
	return analysis.Config{
		Embedding:   c.Embedding,
		LexiconFile: c.Keywords.LexiconFile,
	}
}

// defaults registers every key so that environment variables can override it.
var defaults = map[string]any{
	"embedding.provider":            embedding.ProviderGemini,
	"embedding.max-concurrency":     4,
	"embedding.max-log-length":      200,
	"embedding.gemini.model":        "",
	"embedding.gemini.api-key":      "",
	"embedding.gemini.api-key-file": "",
	"embedding.gemini.batch-size":   0,
	"embedding.hash.dimensions":     0,
	"keywords.lexicon-file":         "",
	"server.addr":                   server.DefaultAddr,
	"server.cors-origins":           []string{},
	"server.max-upload-bytes":       server.DefaultMaxUploadBytes,
	"server.shutdown-timeout":       server.DefaultShutdownTimeout,
	"jobsource.api-url":             jobsource.DefaultAPIURL,
	"jobsource.user-agent":          jobsource.DefaultUserAgent,
	"jobsource.token":               "",
	"jobsource.token-file":          "",
	"jobsource.timeout":             jobsource.DefaultTimeout,
	"rank.limit":                    20,
	"rank.minimum-score":            0,
	"rank.concurrency":              4,
	"rank.exclude-employers":        []string{},
	"rank.exclude-file":             "",
	"rank.search.text":              "",
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "resume-scorer scores how well a resume matches a job description",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	configure(viper.GetViper())
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	// We can't proceed if the config file parsed with error.
	if err := readConfig(viper.GetViper(), cfgFile); err != nil {
		log.Fatal(err)
	}
}

func configure(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// readConfig reads path, or resume-scorer.yaml from the working directory when path
// is empty. Only the implicit file may be missing.
func readConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(app)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	return nil
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &config, nil
}

// setup builds the logger and the validated config shared by every command.
func setup() (*zap.Logger, *Config, error) {
	l, err := logger.New(logger.Options{JSON: viper.GetBool("json"), Debug: viper.GetBool("debug")})
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := decodeConfig(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	l.Debug("config loaded", zap.String("file", viper.ConfigFileUsed()))

	return l, config, nil
}
