package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tensebunny/tensebunny/internal/catalog"
)

var tensesCmd = &cobra.Command{
	Use:   "tenses",
	Short: "List the twelve tenses (optionally filtered by era)",
	RunE: func(cmd *cobra.Command, args []string) error {
		era, _ := cmd.Flags().GetString("era")

		tenses := catalog.Tenses()
		if era != "" {
			tenses = catalog.ByEra(catalog.Era(strings.ToLower(era)))
			if len(tenses) == 0 {
				return fmt.Errorf("no tenses found for era %q", era)
			}
		}

		fmt.Printf("%-28s  %-28s  %-8s  %s\n", "ID", "Name", "Era", "Formula")
		fmt.Println(strings.Repeat("─", 100))

		for _, t := range tenses {
			fmt.Printf("%-28s  %-28s  %-8s  %s\n", t.ID, t.Name, t.Era, t.Formula)
		}

		fmt.Printf("\n%d tenses\n", len(tenses))
		return nil
	},
}

var tensesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the lesson for one tense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := catalog.GetTense(args[0])
		if err != nil {
			return err
		}

		sep := strings.Repeat("─", 60)
		fmt.Printf("%s (%s)\n", t.Name, catalog.EraDisplayName(t.Era))
		fmt.Println(sep)
		fmt.Println(t.Description)
		fmt.Println()
		fmt.Printf("Formula:  %s\n", t.Formula)
		if t.Formula.Note != "" {
			fmt.Printf("          %s\n", t.Formula.Note)
		}
		fmt.Printf("Signals:  %s\n", strings.Join(t.SignalWords, ", "))

		if len(t.Usages) > 0 {
			fmt.Println()
			fmt.Println("When to use it")
			for _, u := range t.Usages {
				fmt.Printf("  • %s\n", u)
			}
		}
		if len(t.Examples) > 0 {
			fmt.Println()
			fmt.Println("Examples")
			for _, e := range t.Examples {
				fmt.Printf("  %-12s %s\n", e.Category, e.Text)
			}
		}
		return nil
	},
}

func init() {
	tensesCmd.Flags().String("era", "", "Filter by era (present, past, future)")

	tensesCmd.AddCommand(tensesShowCmd)
}
