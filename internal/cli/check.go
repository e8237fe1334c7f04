package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/essayflow/essayflow/internal/config"
	"github.com/essayflow/essayflow/internal/highlight"
	"github.com/essayflow/essayflow/internal/model"
	"github.com/essayflow/essayflow/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check [draft-file]",
	Short: "Analyze a draft and output a report (non-interactive)",
	Long: `Analyze an essay draft and print the result without opening the TUI.
Useful for scripts and editor integrations.

Exit codes:
  0 — overall score meets the --min-score floor
  1 — overall score below --min-score
  2 — critical feedback present (any item scored below 75)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringP("format", "f", "text", "output format: text, json, markdown")
	checkCmd.Flags().StringSlice("schools", nil, "target school ids (e.g. jhu,stanford)")
	checkCmd.Flags().Int("min-score", 0, "exit non-zero when the overall score is below this")
}

func runCheck(cmd *cobra.Command, args []string) error {
	essay, _, err := readDraft(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(essay) == "" {
		return fmt.Errorf("no draft to check; pass a file or pipe one to \"essayflow check -\"")
	}

	schoolIDs, _ := cmd.Flags().GetStringSlice("schools")
	schools := model.SchoolsByIDs(schoolIDs)

	client, err := resolveClient(cmd)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("no API key configured; run \"essayflow key set\" or set %s", config.EnvAPIKey)
	}

	result, err := client.Analyze(cmd.Context(), essay, schools)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		if err := outputJSON(essay, result); err != nil {
			return err
		}
	case "markdown":
		fmt.Print(report.RenderMarkdown(result))
	case "text":
		fmt.Print(report.RenderText(result))
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	// Set exit code
	minScore, _ := cmd.Flags().GetInt("min-score")
	if hasCritical(result) {
		os.Exit(2)
	} else if result.OverallScore < minScore {
		os.Exit(1)
	}

	return nil
}

func hasCritical(result *model.AnalysisResult) bool {
	for _, item := range result.Feedback {
		if model.FilterCritical.Matches(item) {
			return true
		}
	}
	return false
}

// outputJSON emits the analysis plus the highlight geometry, so editor
// integrations can paint the quoted passages themselves.
func outputJSON(essay string, result *model.AnalysisResult) error {
	ranges := highlight.BuildRanges(essay, result.Feedback)

	out := struct {
		Result *model.AnalysisResult `json:"result"`
		Ranges []highlight.Range     `json:"ranges"`
	}{result, ranges}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
