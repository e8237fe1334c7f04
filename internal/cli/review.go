package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/essayflow/essayflow/internal/model"
	"github.com/essayflow/essayflow/internal/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review [draft-file]",
	Short: "Open an interactive review session",
	Long: `Open an interactive TUI for drafting and reviewing an essay. With no
argument the editor starts empty; pass a file to load a draft, or "-" to
read it from stdin.

Examples:
  essayflow review                      # start with an empty editor
  essayflow review draft.txt            # load a draft
  essayflow review draft.txt --watch    # re-analyze when the file changes
  pbpaste | essayflow review -          # pipe a draft in`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().StringSlice("schools", nil, "target school ids (e.g. jhu,stanford)")
	reviewCmd.Flags().Bool("pick", false, "pick target schools interactively before starting")
	reviewCmd.Flags().BoolP("watch", "w", false, "watch the draft file and re-analyze on save")
}

func runReview(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("review needs a terminal; use \"essayflow check\" for non-interactive output")
	}

	draft, draftPath, err := readDraft(args)
	if err != nil {
		return err
	}

	schoolIDs, _ := cmd.Flags().GetStringSlice("schools")
	for _, id := range schoolIDs {
		if _, ok := model.SchoolByID(id); !ok {
			return fmt.Errorf("unknown school id %q", id)
		}
	}

	if pick, _ := cmd.Flags().GetBool("pick"); pick {
		schoolIDs, err = pickSchools(schoolIDs)
		if err != nil {
			return err
		}
	}

	client, err := resolveClient(cmd)
	if err != nil {
		return err
	}

	p := tui.NewProgram(client, draft, schoolIDs)

	watch, _ := cmd.Flags().GetBool("watch")
	if watch {
		if draftPath == "" {
			return fmt.Errorf("--watch needs a draft file argument")
		}
		watcher, err := watchDraft(draftPath, p)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	_, err = p.Run()
	return err
}

// readDraft loads the draft from the file argument, stdin for "-", or
// returns empty for no argument. The path comes back only for real
// files so --watch can follow them.
func readDraft(args []string) (draft, path string, err error) {
	if len(args) == 0 {
		return "", "", nil
	}
	if args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading draft: %w", err)
	}
	return string(data), args[0], nil
}

// pickSchools runs the interactive school multi-select.
func pickSchools(preselected []string) ([]string, error) {
	options := make([]huh.Option[string], 0, len(model.Universities))
	for _, s := range model.Universities {
		opt := huh.NewOption(fmt.Sprintf("%s (%s)", s.Name, s.Vibe), s.ID)
		for _, id := range preselected {
			if id == s.ID {
				opt = opt.Selected(true)
			}
		}
		options = append(options, opt)
	}

	picked := append([]string(nil), preselected...)
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Target schools").
			Description(fmt.Sprintf("Pick up to %d schools to tailor the feedback", model.MaxSchools)).
			Options(options...).
			Limit(model.MaxSchools).
			Value(&picked),
	))
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("picking schools: %w", err)
	}
	return picked, nil
}

// watchDraft forwards file saves into the running program as reload
// messages. Editors that replace the file on save emit Create events,
// so both count.
func watchDraft(path string, p *tea.Program) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				data, err := os.ReadFile(path)
				if err != nil {
					slog.Warn("re-reading draft failed", "path", path, "err", err)
					continue
				}
				p.Send(tui.DraftReloadedMsg{Text: string(data)})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("draft watcher error", "err", err)
			}
		}
	}()

	return watcher, nil
}
