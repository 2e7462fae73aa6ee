package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sparky/internal/contentgen"
	"github.com/abhisek/sparky/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests",
}

// openStore opens the event database without building the practice
// engine.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

const stamp = "2006-01-02 15:04:05"

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No LLM requests recorded.")
			return nil
		}

		const row = "%-5v  %-19v  %-10v  %-26v  %6v  %6v  %7v  %v\n"
		fmt.Fprintf(w, row, "ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
		rule(w, 100)
		for _, e := range events {
			ok := "yes"
			if !e.Success {
				ok = "no"
			}
			fmt.Fprintf(w, row, e.ID, e.Timestamp.Local().Format(stamp), e.Purpose,
				clip(e.Model, 26), e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and reply of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no LLM request with ID %d", id)
		}

		w := cmd.OutOrStdout()
		fields := [][2]string{
			{"ID", strconv.Itoa(e.ID)},
			{"Time", e.Timestamp.Local().Format(stamp)},
			{"Provider", e.Provider},
			{"Model", e.Model},
			{"Purpose", e.Purpose},
			{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
			{"Success", strconv.FormatBool(e.Success)},
		}
		if e.ErrorMessage != "" {
			fields = append(fields, [2]string{"Error", e.ErrorMessage})
		}
		for _, f := range fields {
			fmt.Fprintf(w, "%-10s %s\n", f[0]+":", f[1])
		}

		printBody(w, "Prompt", e.RequestBody)
		printBody(w, "Reply", e.ResponseBody)
		return nil
	},
}

func printBody(w io.Writer, label, body string) {
	if body == "" {
		body = "(empty)"
	}
	fmt.Fprintf(w, "\n%s\n", label)
	rule(w, 60)
	fmt.Fprintln(w, body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage by purpose",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		usage, err := s.EventRepo().LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		w := cmd.OutOrStdout()
		if len(usage) == 0 {
			fmt.Fprintln(w, "No LLM usage recorded yet.")
			return nil
		}

		const row = "%-10v  %6v  %10v  %10v  %8v\n"
		fmt.Fprintf(w, row, "Purpose", "Calls", "Input", "Output", "Avg ms")
		rule(w, 52)
		var total store.LLMUsage
		for _, u := range usage {
			fmt.Fprintf(w, row, u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
			total.Calls += u.Calls
			total.InputTokens += u.InputTokens
			total.OutputTokens += u.OutputTokens
		}
		rule(w, 52)
		fmt.Fprintf(w, row, "total", total.Calls, total.InputTokens, total.OutputTokens, "")
		return nil
	},
}

var llmTruncateCmd = &cobra.Command{
	Use:   "truncate",
	Short: "Delete all recorded LLM requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.EventRepo().TruncateLLMEvents(cmd.Context())
		if err != nil {
			return fmt.Errorf("truncate: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d LLM requests.\n", n)
		return nil
	},
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("─", n))
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "",
		fmt.Sprintf("Only show one purpose (e.g. %s, %s)", contentgen.PurposeQuestions, contentgen.PurposeTutor))

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd, llmTruncateCmd)
}
