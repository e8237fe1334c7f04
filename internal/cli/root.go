// Package cli wires up the essayflow command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/essayflow/essayflow/internal/analyze"
	"github.com/essayflow/essayflow/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "essayflow",
	Short: "AI feedback on college application essays",
	Long: `essayflow analyzes college application essay drafts and anchors the
feedback to the exact passages it talks about.

Run "essayflow review" to open the interactive editor, or "essayflow check"
for non-interactive output suitable for scripts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("api-key", "", "API key (overrides config and "+config.EnvAPIKey+")")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().String("base-url", "", "OpenAI-compatible endpoint")
	rootCmd.PersistentFlags().String("model", "", "model to use for analysis")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func configPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := configPath(cmd)
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// clientOptions merges flag overrides over the on-disk config.
func clientOptions(cmd *cobra.Command, cfg *config.Config) analyze.Options {
	opts := analyze.Options{
		BaseURL:       cfg.BaseURL,
		Model:         cfg.Model,
		FallbackModel: cfg.FallbackModel,
	}
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		opts.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		opts.Model = v
	}
	return opts
}

// resolveClient builds an analysis client from flag, env, or config
// credential, in that order. Returns nil with no error when no
// credential is configured anywhere.
func resolveClient(cmd *cobra.Command) (*analyze.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flagKey, _ := cmd.Flags().GetString("api-key")
	credential := cfg.Credential(flagKey)
	if credential == "" {
		return nil, nil
	}

	return analyze.NewClient(credential, clientOptions(cmd, cfg))
}
