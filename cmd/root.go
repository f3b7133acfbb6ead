package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *Config
)

var rootCmd = &cobra.Command{
	Use:   "qol",
	Short: "Tanzania Quality of Life predictor pipeline",
	Long: `qol generates the synthetic Tanzania living-conditions dataset,
trains and selects a quality-of-life regression model, serves it behind a
form-based web app, and renders an offline evaluation report.`,
}

// Execute is the entry point called by main.main().
func Execute() {
	cobra.OnInitialize(initConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./qol.yaml)")
}

func initConfig() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	c, err := LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// mustConfig guards commands that cannot run without configuration.
func mustConfig() *Config {
	if cfg == nil {
		fmt.Fprintln(os.Stderr, "Error: configuration not loaded")
		os.Exit(1)
	}
	return cfg
}
