package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sparky/internal/difficulty"
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/question"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated questions for a category (no database)",
	Long: `Generate and interactively answer questions for one category.

This is a stateless developer tool: no database, no profile, no events.
Useful for evaluating question quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("category", "", "Category: verbal, quantitative or non-verbal (required)")
	previewCmd.Flags().String("level", "medium", "Difficulty: easy, medium or hard")
	previewCmd.Flags().Int("grade", 5, "Grade to write questions for")
	previewCmd.Flags().Int("count", 5, "Maximum number of questions to show")
	_ = previewCmd.MarkFlagRequired("category")
}

func runPreview(cmd *cobra.Command, args []string) error {
	catVal, _ := cmd.Flags().GetString("category")
	levelVal, _ := cmd.Flags().GetString("level")
	grade, _ := cmd.Flags().GetInt("grade")
	count, _ := cmd.Flags().GetInt("count")

	cat, err := question.ParseCategory(catVal)
	if err != nil {
		return err
	}
	level, err := difficulty.Parse(levelVal)
	if err != nil {
		return err
	}
	if !progress.ValidGrade(grade) {
		return fmt.Errorf("invalid grade %d: must be %d-%d", grade, progress.MinGrade, progress.MaxGrade)
	}

	ctx := cmd.Context()
	gen, offline, err := newGenerator(ctx, nil)
	if err != nil {
		return err
	}
	source := "LLM"
	if offline {
		source = "offline bank"
	}

	fmt.Printf("%s %s, grade %d, %s (%s)\n", cat.Icon(), cat.DisplayName(), grade, level.DisplayName(), source)
	fmt.Println("Generating questions...")
	fmt.Println()

	qs, err := gen.GenerateQuestions(ctx, cat, level, grade)
	if err != nil {
		return fmt.Errorf("generate questions: %w", err)
	}
	if len(qs) > count {
		qs = qs[:count]
	}

	scanner := bufio.NewScanner(os.Stdin)
	var correct int
	for i, q := range qs {
		fmt.Printf("── Question %d/%d [%s] ──\n", i+1, len(qs), q.SubCategory)
		fmt.Println(q.Text)
		for j, opt := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		n, err := strconv.Atoi(answer)
		switch {
		case answer == "":
			fmt.Printf("(skipped) Answer: %s\n", q.CorrectOption())
		case err != nil || n < 1 || n > len(q.Options):
			fmt.Printf("Not an option. Answer: %s\n", q.CorrectOption())
		case q.IsCorrect(n - 1):
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		default:
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectOption())
		}

		if q.Explanation != "" {
			fmt.Printf("Explanation: %s\n", q.Explanation)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, len(qs))
	return nil
}
