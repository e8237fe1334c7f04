package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/essayflow/essayflow/internal/model"
	"github.com/essayflow/essayflow/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [result-file]",
	Short: "Render a saved analysis as a shareable report",
	Long: `Render the JSON output of "essayflow check --format json" as a report.
Pass "-" (or no argument) to read the JSON from stdin.

Examples:
  essayflow check draft.txt -f json > result.json
  essayflow report result.json
  essayflow report result.json --mailto counselor@school.edu`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringP("format", "f", "text", "output format: text, markdown")
	reportCmd.Flags().String("mailto", "", "print a mailto URL addressed to this recipient")
}

func runReport(cmd *cobra.Command, args []string) error {
	result, err := readResult(args)
	if err != nil {
		return err
	}

	if to, _ := cmd.Flags().GetString("mailto"); to != "" {
		fmt.Println(report.MailtoURL(to, result))
		return nil
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "markdown":
		fmt.Print(report.RenderMarkdown(result))
	case "text":
		fmt.Print(report.RenderText(result))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

func readResult(args []string) (*model.AnalysisResult, error) {
	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("reading result: %w", err)
	}

	// Accept both the bare result and the check command's envelope.
	var envelope struct {
		Result *model.AnalysisResult `json:"result"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Result != nil {
		return envelope.Result, nil
	}

	var result model.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parsing result: %w", err)
	}
	if result.Feedback == nil {
		return nil, fmt.Errorf("input does not look like an analysis result")
	}
	return &result, nil
}
