package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/polygove/internal/platform/tui"
	"github.com/vovakirdan/polygove/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick scenes from an interactive menu",
	Long: `Start polygove with a scene picker. After a scene ends you return
to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Run scene
  Tab          - Browse the run journal
  Q            - Quit`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	for {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}

		res, err := tui.RunMenu(width, height)
		if err != nil {
			return err
		}

		switch {
		case res.Quit:
			return nil

		case res.ShowRuns:
			store, err := storage.Open(cfg.Storage.Path)
			if err != nil {
				return err
			}
			runs, err := store.RecentRuns(100)
			store.Close()
			if err != nil {
				return err
			}
			if err := tui.RunRuns(runs, width, height); err != nil {
				return err
			}

		default:
			if _, err := runScene(cmd.Context(), cfg, runOptions{Scene: res.SceneID, Save: true}); err != nil {
				return err
			}
		}
	}
}
