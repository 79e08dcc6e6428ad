package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tensebunny/tensebunny/internal/progress"
	"github.com/tensebunny/tensebunny/internal/quiz"
	"github.com/tensebunny/tensebunny/internal/round"
	"github.com/tensebunny/tensebunny/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, _ := cmd.Flags().GetInt("recent")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		rec, err := st.ProgressRepo().Load(ctx)
		if err != nil && !errors.Is(err, progress.ErrNotFound) {
			return fmt.Errorf("load progress: %w", err)
		}
		if rec.UserName == "" {
			fmt.Println("No learner yet. Run tensebunny to get started.")
			return nil
		}

		have, need := rec.ProgressToNext()
		fmt.Printf("%s — Level %d (%d/%d XP this level), %d XP total, %d day streak\n",
			rec.UserName, rec.Level, have, need, rec.XP, rec.Streak)
		if len(rec.Badges) > 0 {
			var names []string
			for _, id := range rec.Badges {
				b := progress.LookupBadge(id)
				names = append(names, b.Icon+" "+b.Name)
			}
			fmt.Printf("Badges: %s\n", strings.Join(names, ", "))
		}

		events := st.EventRepo()
		byMode, err := events.StatsByMode(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		if len(byMode) == 0 {
			fmt.Println("\nNo rounds played yet.")
			return nil
		}

		fmt.Println()
		fmt.Printf("%-18s  %6s  %9s  %6s\n", "Mode", "Rounds", "Accuracy", "XP")
		fmt.Println(strings.Repeat("─", 46))
		for _, m := range byMode {
			acc := "-"
			if m.Questions > 0 {
				acc = fmt.Sprintf("%d%%", m.Correct*100/m.Questions)
			}
			fmt.Printf("%-18s  %6d  %9s  %6d\n", modeTitle(m.Mode), m.Sessions, acc, m.XP)
		}

		if recent <= 0 {
			return nil
		}
		sessions, err := events.QuerySessionEvents(ctx, store.QueryOpts{Limit: recent})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		fmt.Println()
		fmt.Printf("%-16s  %-18s  %7s  %s\n", "When", "Mode", "Score", "")
		fmt.Println(strings.Repeat("─", 56))
		for _, e := range sessions {
			note := ""
			if e.Action == round.ActionAbandon {
				note = "left early"
			}
			fmt.Printf("%-16s  %-18s  %3d/%-3d  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04"), modeTitle(e.Mode), e.Score, e.Total, note)
		}
		return nil
	},
}

func modeTitle(id string) string {
	if m, err := quiz.ModeByID(id); err == nil {
		return m.Title
	}
	return id
}

func init() {
	statsCmd.Flags().IntP("recent", "n", 10, "Number of recent rounds to list")
}
