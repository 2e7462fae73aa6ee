package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sparky/internal/question"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse the skill catalog",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skill tags (optionally filtered by category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		catVal, _ := cmd.Flags().GetString("category")

		cats := question.Categories()
		if catVal != "" {
			cat, err := question.ParseCategory(catVal)
			if err != nil {
				return err
			}
			cats = []question.Category{cat}
		}

		fmt.Printf("%-28s  %-14s  %s\n", "Skill", "Category", "About the category")
		fmt.Println(strings.Repeat("─", 90))

		var n int
		for _, cat := range cats {
			for _, tag := range cat.SkillTags() {
				fmt.Printf("%-28s  %-14s  %s\n", tag, cat, cat.Description())
				n++
			}
		}

		fmt.Printf("\n%d skills\n", n)
		return nil
	},
}

func init() {
	skillListCmd.Flags().String("category", "", "Filter by category (verbal, quantitative or non-verbal)")

	skillCmd.AddCommand(skillListCmd)
}
