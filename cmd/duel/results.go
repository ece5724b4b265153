package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-duel/internal/registry"
	"github.com/vovakirdan/tui-duel/internal/storage"
)

var (
	flagLimit int
	flagJSON  bool
	flagClear bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [contest]",
	Short: "Show recorded results",
	Long: `Display recent results and per-contest statistics. Without a contest,
results of every contest are listed with a summary per contest.

Examples:
  duel results
  duel results flapping --limit 20
  duel results --json
  duel results traffic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
	resultsCmd.Flags().BoolVar(&flagJSON, "json", false, "Print results as JSON")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the contest's results")
}

func runResults(_ *cobra.Command, args []string) error {
	var id string
	if len(args) == 1 {
		id = args[0]
		if !registry.Exists(id) {
			return fmt.Errorf("unknown contest %q (run 'duel list' to see available contests)", id)
		}
	}
	if flagClear && id == "" {
		return errors.New("--clear needs a contest")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("no results database (--db is empty)")
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(id); err != nil {
			return err
		}
		fmt.Printf("Cleared results for %s.\n", id)
		return nil
	}

	results, err := store.RecentResults(id, flagLimit)
	if err != nil {
		return err
	}
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	title := "all contests"
	if meta, ok := registry.Lookup(id); ok {
		title = fmt.Sprintf("%s vs %s", meta.ContestName, meta.ActorName)
	}
	fmt.Printf("Results - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		if id == "" {
			id = "<contest>"
		}
		fmt.Printf("Play 'duel play %s' to make history!\n", id)
		return nil
	}

	fmt.Printf("  %-16s  %-12s  %-4s  %-5s  %7s  %s\n", "When", "Contest", "", "Level", "Time", "Player")
	fmt.Printf("  %-16s  %-12s  %-4s  %-5s  %7s  %s\n", "----", "-------", "", "-----", "----", "------")
	for _, r := range results {
		verdict := "LOST"
		if r.Victory {
			verdict = "WON"
		}
		fmt.Printf("  %-16s  %-12s  %-4s  %5.2f  %6.1fs  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Contest, verdict,
			r.Difficulty, float64(r.DurationMs)/1000, r.Player)
	}
	fmt.Println()

	if id != "" {
		stats, err := store.GetContestStats(id)
		if err != nil {
			return err
		}
		printStats(stats)
		return nil
	}

	all, err := store.GetAllContestStats()
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(all))
	for k := range all {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	for _, k := range ids {
		printStats(all[k])
	}
	return nil
}

func printStats(s *storage.ContestStats) {
	if s.Plays == 0 {
		fmt.Printf("%-12s never played\n", s.Contest)
		return
	}
	fmt.Printf("%-12s %d played, %d won (%.0f%%), avg level %.2f, avg %s, last %s\n",
		s.Contest, s.Plays, s.Wins, s.WinRate()*100, s.AvgDifficulty,
		(time.Duration(s.AvgDurationMs) * time.Millisecond).Round(100*time.Millisecond),
		s.LastPlayed.Local().Format("2006-01-02 15:04"))
}
