// Package cmd implements the gazetteer command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/diariobr/gazetteer/internal/cmd/globals"
	"github.com/diariobr/gazetteer/internal/cmd/output"
	"github.com/diariobr/gazetteer/pkg/logging"
)

var (
	configFile  string
	globalFlags *globals.Flags

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
	// BuiltBy is the build system identifier.
	BuiltBy = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gazetteer",
	Short: "Brazilian municipal gazette configuration pipeline",
	Long: `Gazetteer resolves identity between the IBGE municipality registry and
gazette publisher portal listings, and maintains the aggregate registry of
per-municipality fetch configurations.

A run matches one publisher's scraped municipality list against the IBGE
registry, synthesizes configuration entries for the matches, and merges them
into the aggregate file without ever claiming a municipality twice.`,
	PersistentPreRunE: setupCommand,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date, builtBy string) {
	Version = version
	Commit = commit
	Date = date
	BuiltBy = builtBy
	rootCmd.Version = version

	// Context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.gazetteer.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: auto, console, json")
	globalFlags = globals.AddFlags(rootCmd)

	// Bind flags to viper
	for _, flag := range []string{"verbose", "quiet", "log-level", "log-format"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", flag, err))
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".gazetteer" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gazetteer")
	}

	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil && globalFlags != nil && globalFlags.Verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// setupCommand is called before any command runs.
func setupCommand(_ *cobra.Command, _ []string) error {
	// Default output format from terminal detection
	if globalFlags.Output == "" {
		globalFlags.Output = string(output.DetectFormat(""))
	}
	if _, err := output.ParseFormat(globalFlags.Output); err != nil {
		return err
	}

	return nil
}

// configureLogging sets up the logging system based on configuration.
func configureLogging() {
	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	if viper.GetBool("quiet") {
		level = zerolog.WarnLevel
	}
	if configured := viper.GetString("log-level"); configured != "" {
		if parsed, err := zerolog.ParseLevel(configured); err == nil {
			level = parsed
		}
	}

	cfg := &logging.Config{
		Level:   level.String(),
		Format:  viper.GetString("log-format"),
		Output:  os.Getenv("LOG_OUTPUT"),
		NoColor: globalFlags != nil && globalFlags.NoColor,
	}
	if cfg.Format == "" {
		cfg.Format = "auto"
	}
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}

	logging.Setup(cfg)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Overload(envFile); err == nil {
			if globalFlags != nil && globalFlags.Verbose {
				fmt.Fprintf(os.Stderr, "Loaded %s\n", envFile)
			}
		}
	}
}

// formatter returns the output formatter selected by the global flags.
func formatter() (output.Formatter, output.Format) {
	format := output.DetectFormat(globalFlags.Output)
	return output.NewFormatter(format), format
}
