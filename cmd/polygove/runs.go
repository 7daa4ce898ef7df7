package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/polygove/internal/platform/tui"
	"github.com/vovakirdan/polygove/internal/storage"
)

var (
	flagLimit    int
	flagRunScene string
	flagBrowse   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent runs",
	Long: `Display the most recent entries of the run journal.

Examples:
  polygove runs
  polygove runs --limit 20
  polygove runs --scene pinball
  polygove runs --browse`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().StringVar(&flagRunScene, "scene", "", "Only show runs of this scene")
	runsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open an interactive browser")
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	var runs []storage.RunRecord
	if flagRunScene != "" {
		runs, err = store.SceneRuns(flagRunScene)
		if len(runs) > flagLimit && flagLimit > 0 {
			runs = runs[:flagLimit]
		}
	} else {
		runs, err = store.RecentRuns(flagLimit)
	}
	if err != nil {
		return err
	}

	if flagBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunRuns(runs, width, height)
	}

	printRuns(cmd, runs, time.Now())
	return nil
}

func printRuns(cmd *cobra.Command, runs []storage.RunRecord, now time.Time) {
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return
	}

	fmt.Fprintln(out, "Recent runs:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-5s  %-10s  %10s  %8s  %8s  %8s  %s\n", "#", "Scene", "Ticks", "Hits", "Blocked", "Time", "When")
	fmt.Fprintf(out, "  %-5s  %-10s  %10s  %8s  %8s  %8s  %s\n", "-", "-----", "-----", "----", "-------", "----", "----")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-5d  %-10s  %10s  %8s  %8s  %8s  %s\n",
			r.ID, r.Scene,
			humanize.Comma(r.Ticks),
			humanize.Comma(r.Collisions),
			humanize.Comma(r.Rejected),
			r.Duration.Round(100*time.Millisecond),
			humanize.RelTime(r.CreatedAt, now, "ago", "from now"))
	}
}
