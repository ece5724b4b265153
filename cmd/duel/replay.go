package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-duel/internal/contest"
	"github.com/vovakirdan/tui-duel/internal/replay"
)

var flagNoVerify bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-run a recorded contest",
	Long: `Play back a recording made with 'duel play --record' without a terminal and
check that it reaches the recorded outcome. Recordings are YAML (.yaml, .yml)
or MessagePack (.msgpack, .mp).

Examples:
  duel replay umbrella.yaml
  duel replay run.msgpack --no-verify`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagNoVerify, "no-verify", false, "Only report the replayed outcome")
}

func runReplay(_ *cobra.Command, args []string) error {
	rec, err := replay.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s at level %.2f, seed %d, %d frames\n", rec.Contest, rec.Difficulty, rec.Seed, len(rec.Frames))

	run := replay.Verify
	if flagNoVerify {
		run = replay.Run
	}
	out, err := run(rec, contest.Deps{})
	if err != nil {
		return err
	}

	switch {
	case !out.Finished:
		fmt.Println("Contest did not finish.")
	case out.Victory:
		fmt.Printf("WON at frame %d\n", out.AtFrame)
	default:
		fmt.Printf("LOST at frame %d\n", out.AtFrame)
	}
	fmt.Printf("Scores: player %.2f, opponent %.2f\n", out.Scores[0], out.Scores[1])
	if !flagNoVerify {
		fmt.Println("Replay matches the recording.")
	}
	return nil
}
