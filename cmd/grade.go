package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/sparky/internal/progress"
)

var gradeCmd = &cobra.Command{
	Use:   "grade [N]",
	Short: "Show or change the learner's grade",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEngine(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		if len(args) == 0 {
			p := e.svc.Profile()
			if !p.HasGrade() {
				fmt.Println("No grade chosen yet.")
				return nil
			}
			fmt.Printf("Grade %d\n", p.Grade)
			return nil
		}

		g, err := strconv.Atoi(args[0])
		if err != nil || !progress.ValidGrade(g) {
			return fmt.Errorf("invalid grade %q: must be %d-%d", args[0], progress.MinGrade, progress.MaxGrade)
		}
		if _, err := e.svc.SetGrade(ctx, g); err != nil {
			return fmt.Errorf("save grade: %w", err)
		}
		fmt.Printf("Grade set to %d.\n", g)
		return nil
	},
}
