// Package cli implements the ddrgen command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/propscan/ddrgen/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ddrgen",
	Short: "ddrgen - Detailed Diagnostic Reports from property inspection PDFs",
	Long: `ddrgen turns a property inspection report and a thermal imaging report
into a Detailed Diagnostic Report (DDR).

The pipeline has four stages:
  1. ingest   - extract text from PDFs, render pages, run OCR
  2. extract  - pull structured facts out of the text with an LLM
  3. merge    - group facts by area, de-duplicate, detect conflicts
  4. analyze  - evidence-constrained root cause and severity reasoning
  5. report   - render the DDR as Markdown, text, or JSON

Each stage reads the previous stage's output file, so stages can be run
individually or all at once with 'ddrgen run'. Every claim in the final
report is traceable to page numbers and quotes from the source PDFs.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ddrgen v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.ddrgen/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".ddrgen"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match DDRGEN_*
	viper.SetEnvPrefix("DDRGEN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then environment variables.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configFile, err)
		}
	}

	// API key comes from the environment only
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	}

	if baseURL := viper.GetString("base_url"); baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}
	if mdl := viper.GetString("model"); mdl != "" {
		cfg.LLM.Model = mdl
	}

	cfg.Output.Verbose = verbose
	return cfg, nil
}
