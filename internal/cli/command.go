package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/siyan12/csvtranslator/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "csvtranslator [input.csv]",
		Short: "Batch translator for localization CSV exports",
		Long: `csvtranslator translates localization CSV files through the DeepL API.

It reads tables exported by the Unity Localization plugin, translates the
source-language column into one or more target languages, and writes the
result with all other columns untouched.

Examples:
  csvtranslator                                  # Launch interactive GUI (default)
  csvtranslator strings.csv --target de,fr       # Translate one file via CLI
  csvtranslator --input-dir in --output-dir out --target de
  csvtranslator --test-key                       # Check the configured API key`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.csvtranslator.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputPath, "output", "o", "", "Output file for single-file mode (default: output/<input name>)")
	cmd.Flags().StringVar(&flags.InputDir, "input-dir", flags.InputDir, "Folder mode: directory of CSV files to translate")
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", flags.OutputDir, "Folder mode: destination directory")
	cmd.Flags().StringVarP(&flags.SourceLang, "source", "s", flags.SourceLang, "Source language code")
	cmd.Flags().StringSliceVarP(&flags.TargetLangs, "target", "t", nil, "Target language codes (repeatable or comma-separated)")
	cmd.Flags().BoolVar(&flags.FillEmptyOnly, "fill-empty", false, "Only fill empty target cells instead of overwriting existing values")
	cmd.Flags().IntVar(&flags.Workers, "workers", flags.Workers, "Parallel translation calls (1 = sequential)")
	cmd.Flags().BoolVar(&flags.TestKey, "test-key", false, "Test the DeepL API key and exit")
	cmd.Flags().BoolVar(&flags.GUIMode, "gui", false, "Launch the GUI even when other flags are set")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Disable the persistent translation memory")
	cmd.Flags().StringVar(&flags.CachePath, "cache-path", "", "Translation memory database path")
	cmd.Flags().IntVar(&flags.MaxAttempts, "max-attempts", flags.MaxAttempts, "Network attempts per cell for retryable failures")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translate.source_lang", cmd.Flags().Lookup("source"))
	viper.BindPFlag("translate.fill_empty", cmd.Flags().Lookup("fill-empty"))
	viper.BindPFlag("translate.workers", cmd.Flags().Lookup("workers"))
	viper.BindPFlag("translate.max_attempts", cmd.Flags().Lookup("max-attempts"))
	viper.BindPFlag("cache.path", cmd.Flags().Lookup("cache-path"))
	viper.BindPFlag("cache.disabled", cmd.Flags().Lookup("no-cache"))
	viper.BindPFlag("folders.input", cmd.Flags().Lookup("input-dir"))
	viper.BindPFlag("folders.output", cmd.Flags().Lookup("output-dir"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".csvtranslator" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".csvtranslator")
	}

	// Environment variables
	viper.SetEnvPrefix("CSVTRANSLATOR")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetDeepLKey retrieves the DeepL API key from environment or config
func GetDeepLKey() string {
	// First check environment variable
	if key := os.Getenv("DEEPL_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("deepl.api_key")
}

// SaveAPIKey persists the DeepL API key to the config file, creating the
// file when it does not exist yet.
func SaveAPIKey(key string) error {
	viper.Set("deepl.api_key", key)
	return writeConfig()
}

// SaveLastUsedTargets persists the target languages of a successful run so
// the GUI can preselect them next time.
func SaveLastUsedTargets(langs []string) error {
	viper.Set("translate.target_langs", langs)
	return writeConfig()
}

// LastUsedTargets returns the target languages of the previous run.
func LastUsedTargets() []string {
	return viper.GetStringSlice("translate.target_langs")
}

func writeConfig() error {
	if err := viper.WriteConfig(); err == nil {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to locate home directory: %w", err)
	}
	return viper.WriteConfigAs(filepath.Join(home, ".csvtranslator.yaml"))
}
