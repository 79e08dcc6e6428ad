package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tensebunny/tensebunny/internal/catalog"
	"github.com/tensebunny/tensebunny/internal/gateway"
	"github.com/tensebunny/tensebunny/internal/llm"
	"github.com/tensebunny/tensebunny/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview AI-generated practice questions for a tense (no database)",
	Long: `Generate and interactively answer practice questions for one tense.

This is a stateless tool — no database, no XP, no events.
Useful for checking the quality of generated questions.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("tense", "", "Tense ID or name (required)")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
	_ = previewCmd.MarkFlagRequired("tense")
}

func runPreview(cmd *cobra.Command, args []string) error {
	tenseVal, _ := cmd.Flags().GetString("tense")
	count, _ := cmd.Flags().GetInt("count")

	ref := catalog.Resolve(tenseVal)
	if !ref.Found {
		return fmt.Errorf("no tense found for %q (see tensebunny tenses)", tenseVal)
	}
	tense := ref.Tense

	// No EventRepo: request logging is skipped.
	ctx := context.Background()
	suite, err := llm.NewSuiteFromEnv(ctx, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	ai := gateway.New(suite)

	fmt.Printf("Tense: %s — %s\n", tense.ID, tense.Name)
	fmt.Printf("Generating %d questions...\n\n", count)

	pool, err := ai.Practice(ctx, tense.ID, count)
	if err != nil {
		return err
	}

	sess := quiz.Start(pool.Questions, quiz.SampleAll, quiz.Options{Feedback: true})
	scanner := bufio.NewScanner(os.Stdin)

	for {
		q, idx, ok := sess.Current()
		if !ok {
			break
		}

		fmt.Printf("── Question %d/%d ──\n", idx+1, sess.Len())
		fmt.Println(q.Sentence)
		for j, o := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, o)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			sess.Abandon()
			break
		}

		out, err := sess.SubmitAt(idx, pickOption(q, scanner.Text()))
		if err != nil {
			return err
		}
		if out.Correct {
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", out.Expected)
		}
		if out.Explanation != "" {
			fmt.Printf("Explanation: %s\n", out.Explanation)
		}
		fmt.Println()

		if _, err := sess.Advance(); err != nil && !errors.Is(err, quiz.ErrNoFeedback) {
			return err
		}
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", sess.Score(), sess.Len())
	return nil
}

// pickOption accepts an option number or the option text.
func pickOption(q catalog.Question, input string) string {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1]
	}
	for _, o := range q.Options {
		if strings.EqualFold(o, input) {
			return o
		}
	}
	return input
}
