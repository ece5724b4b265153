package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-duel/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available contests",
	Long:  `Shows every contest in campaign order with the opponent who sets it.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	contests := registry.List()

	if len(contests) == 0 {
		fmt.Println("No contests available.")
		return
	}

	fmt.Println("Available contests:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxActorLen := 2, 8 // "ID", "Opponent" headers
	for _, m := range contests {
		maxIDLen = max(maxIDLen, len(m.ID()))
		maxActorLen = max(maxActorLen, len(m.ActorName))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxActorLen, "Opponent", "Contest")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxActorLen, "--------", "-------")

	for _, m := range contests {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, m.ID(), maxActorLen, m.ActorName, m.ContestName)
	}

	fmt.Println()
	fmt.Println("Run 'duel play <id>' to play a contest, or 'duel campaign' to face them all.")
}
