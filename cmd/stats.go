package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/practice"
	"github.com/abhisek/sparky/internal/session"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEngine(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		p := e.svc.Profile()
		if !p.HasGrade() {
			fmt.Println("No grade chosen yet. Run sparky to get started.")
			return nil
		}

		sep := strings.Repeat("─", 48)
		fmt.Printf("Grade:          %d (%s questions)\n", p.Grade, e.svc.Level().DisplayName())
		fmt.Printf("Daily streak:   %d (best %d)\n", p.CurrentStreak, p.BestStreak)
		if p.LastCompletedDate != "" {
			fmt.Printf("Last daily:     %s\n", p.LastCompletedDate)
		}
		fmt.Printf("Correct total:  %d\n", p.TotalCorrectAnswers)
		fmt.Printf("Perfect scores: %d\n", p.PerfectScores)

		fmt.Println()
		fmt.Println("Quizzes completed")
		fmt.Println(sep)
		for _, m := range session.CountedModes() {
			fmt.Printf("%-20s  %6d\n", m.DisplayName(), p.QuizCompletions[m])
		}

		fmt.Println()
		fmt.Println("Skills")
		fmt.Println(sep)
		for _, cat := range practice.Report(p) {
			fmt.Printf("%s %s\n", cat.Category.Icon(), cat.Category.DisplayName())
			for _, row := range cat.Skills {
				if !row.Seen() {
					fmt.Printf("  %-26s  %s\n", row.Skill, "not tried yet")
					continue
				}
				fmt.Printf("  %-26s  %3.0f%%  (%d/%d)\n",
					row.Skill, row.Stat.Accuracy()*100, row.Stat.Correct, row.Stat.Total)
			}
		}

		catalog := e.svc.Catalog()
		fmt.Println()
		fmt.Printf("Badges (%d of %d)\n", len(p.UnlockedAchievements), catalog.Len())
		fmt.Println(sep)
		for _, a := range catalog.All() {
			mark := "  "
			if p.HasAchievement(a.ID) {
				mark = a.Icon
			}
			fmt.Printf("%s  %-22s  %s\n", mark, a.Name, a.Description)
		}

		if coach, _ := cmd.Flags().GetBool("coach"); coach {
			summary, err := e.svc.Summary(ctx)
			if err != nil {
				logging.FromContext(ctx).Warn().Err(err).Msg("progress summary failed")
				return fmt.Errorf("progress summary: %w", err)
			}
			fmt.Println()
			fmt.Println(summary)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("coach", false, "Also ask the coach for a short progress summary")
}
