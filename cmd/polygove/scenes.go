package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/polygove/internal/scene"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List built-in scenes",
	Long:  `Shows every scene that can be passed to 'polygove run'.`,
	Run:   runScenes,
}

func runScenes(cmd *cobra.Command, args []string) {
	scenes := scene.List()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Available scenes:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, s := range scenes {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range scenes {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'polygove run <id>' to start one.")
}
