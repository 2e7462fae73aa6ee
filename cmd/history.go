package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sparky/internal/session"
	"github.com/abhisek/sparky/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent practice sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		ctx := cmd.Context()
		e, err := openEngine(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.svc.History(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No sessions played yet.")
			return nil
		}

		fmt.Printf("%-16s  %-20s  %-8s  %-6s  %-8s  %s\n",
			"When", "Mode", "Result", "Time", "Status", "Badges")
		fmt.Println(strings.Repeat("─", 84))

		catalog := e.svc.Catalog()
		for _, ev := range events {
			mode := session.Mode(ev.Mode)
			result := fmt.Sprintf("%d/%d", ev.Correct, ev.Questions)
			if mode == session.ModeCreative {
				result = "written"
			}
			status := "done"
			if ev.Action == store.SessionAbandoned {
				status = "stopped"
			}
			var badges []string
			for _, a := range catalog.Resolve(ev.Achievements) {
				badges = append(badges, a.Name)
			}
			fmt.Printf("%-16s  %-20s  %-8s  %-6s  %-8s  %s\n",
				ev.Timestamp.Local().Format("2006-01-02 15:04"),
				mode.DisplayName(),
				result,
				fmt.Sprintf("%d:%02d", ev.DurationSecs/60, ev.DurationSecs%60),
				status,
				strings.Join(badges, ", "),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
