package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tensebunny/tensebunny/internal/llm"
	"github.com/tensebunny/tensebunny/internal/store"
)

const stamp = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the tutor, practice, speech and mascot AI calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent AI calls",
	RunE:  runLLMList,
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the captured request and response of one AI call",
	Args:  cobra.ExactArgs(1),
	RunE:  runLLMView,
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage and estimated cost",
	RunE:  runLLMStats,
}

func rule(width int) string { return strings.Repeat("─", width) }

func runLLMList(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	purpose, _ := cmd.Flags().GetString("purpose")
	since, _ := cmd.Flags().GetDuration("since")

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := store.QueryOpts{Limit: limit}
	if since > 0 {
		opts.From = time.Now().Add(-since)
	}
	events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}

	rows := events[:0:0]
	for _, e := range events {
		if purpose == "" || e.Purpose == purpose {
			rows = append(rows, e)
		}
	}
	if len(rows) == 0 {
		fmt.Println("No AI calls recorded.")
		return nil
	}

	const row = "%-5v  %-19s  %-13s  %-28s  %6v  %6v  %7v  %s\n"
	fmt.Printf(row, "ID", "When", "Purpose", "Model", "In", "Out", "Ms", "OK")
	fmt.Println(rule(98))
	for _, e := range rows {
		mark := "✓"
		if !e.Success {
			mark = "✗"
		}
		fmt.Printf(row, e.ID, e.Timestamp.Local().Format(stamp), e.Purpose,
			truncate(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs, mark)
	}
	return nil
}

func runLLMView(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid ID %q: %w", args[0], err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	e, err := st.EventRepo().GetLLMEvent(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if e == nil {
		return fmt.Errorf("no AI call with ID %d", id)
	}

	fields := [][2]string{
		{"ID", strconv.Itoa(e.ID)},
		{"When", e.Timestamp.Local().Format(stamp)},
		{"Provider", e.Provider},
		{"Model", e.Model},
		{"Purpose", e.Purpose},
		{"Tokens", fmt.Sprintf("%d in, %d out", e.InputTokens, e.OutputTokens)},
		{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
		{"Success", strconv.FormatBool(e.Success)},
	}
	if e.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", e.ErrorMessage})
	}
	for _, f := range fields {
		fmt.Printf("%-10s %s\n", f[0]+":", f[1])
	}

	printBody("REQUEST", e.RequestBody)
	printBody("RESPONSE", e.ResponseBody)
	return nil
}

func printBody(title, body string) {
	if body == "" {
		body = "(not captured)"
	}
	fmt.Printf("\n%s\n%s\n%s\n%s\n", rule(60), title, rule(60), body)
}

func runLLMStats(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	repo := st.EventRepo()
	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("query usage: %w", err)
	}
	if len(byPurpose) == 0 {
		fmt.Println("No AI usage recorded yet.")
		return nil
	}

	const usageRow = "%-16s  %6v  %10v  %10v  %10v  %8v\n"
	fmt.Printf("Usage by purpose\n%s\n", rule(72))
	fmt.Printf(usageRow, "Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	fmt.Println(rule(72))
	var sum llmTotals
	for _, u := range byPurpose {
		sum.add(u)
		fmt.Printf(usageRow, u.Purpose, u.Calls, u.InputTokens, u.OutputTokens,
			u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
	}
	fmt.Println(rule(72))
	fmt.Printf(usageRow, "TOTAL", sum.calls, sum.in, sum.out, sum.in+sum.out, "")

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("query model usage: %w", err)
	}
	if len(byModel) > 0 {
		printCosts(byModel)
	}
	return nil
}

type llmTotals struct{ calls, in, out int }

func (t *llmTotals) add(u store.LLMUsage) {
	t.calls += u.Calls
	t.in += u.InputTokens
	t.out += u.OutputTokens
}

// printCosts prices each model from the built-in table. Models without a
// price show "?" and make the total partial.
func printCosts(byModel []store.LLMUsage) {
	const costRow = "%-32s  %6v  %10v  %10v  %10s\n"
	fmt.Printf("\nEstimated cost (USD)\n%s\n", rule(72))
	fmt.Printf(costRow, "Model", "Calls", "Input", "Output", "Cost")
	fmt.Println(rule(72))

	var total float64
	var unpriced []string
	for _, u := range byModel {
		price := "?"
		if p := llm.LookupCost(u.Model); p != nil {
			c := p.Cost(u.InputTokens, u.OutputTokens)
			total += c
			price = formatCost(c)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		fmt.Printf(costRow, truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, price)
	}

	label := "TOTAL"
	if len(unpriced) > 0 {
		label += " (partial)"
	}
	fmt.Println(rule(72))
	fmt.Printf(costRow, label, "", "", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Printf("\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose (tutor-chat, support-chat, practice, speech, mascot)")
	llmListCmd.Flags().Duration("since", 0, "Only show calls newer than this, e.g. 24h")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
