package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/essayflow/essayflow/internal/config"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set [value]",
	Short: "Store an API key in the config file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runKeySet,
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API key (masked)",
	RunE:  runKeyShow,
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE:  runKeyClear,
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyClearCmd)
}

func runKeySet(cmd *cobra.Command, args []string) error {
	var value string
	if len(args) == 1 {
		value = args[0]
	} else {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("API key").
				EchoMode(huh.EchoModePassword).
				Value(&value),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("reading key: %w", err)
		}
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("empty API key")
	}

	path, err := configPath(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.APIKey = value
	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Printf("API key saved to %s\n", path)
	return nil
}

func runKeyShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		fmt.Println("No API key stored.")
		return nil
	}
	fmt.Println(maskKey(cfg.APIKey))
	return nil
}

func runKeyClear(cmd *cobra.Command, args []string) error {
	path, err := configPath(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		fmt.Println("No API key stored.")
		return nil
	}
	cfg.APIKey = ""
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Println("API key removed.")
	return nil
}

// maskKey keeps just enough of the key to recognize it.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
