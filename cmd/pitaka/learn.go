package main

import (
	"fmt"

	"github.com/mlsantos/pitaka/internal/cli"
	"github.com/mlsantos/pitaka/internal/model"
	"github.com/spf13/cobra"
)

func learnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn [pattern] [category]",
		Short: "Teach a pattern-to-category rule",
		Long: `Teach a categorization rule. Learned rules take precedence over the
built-in merchant taxonomy. Learning the same pattern again overwrites the
prior rule.

Examples:
  pitaka learn "KURYENTE BILLS" Utilities
  pitaka learn "MY BARBER" "Health & Personal Care" --merchant "Tony's Barbershop"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			merchant, _ := cmd.Flags().GetString("merchant")

			store := loadRuleStore()
			rule, err := store.Learn(args[0], args[1], merchant, model.RuleSourceManual)
			if err != nil {
				return err
			}
			if err := store.Save(rulesPath()); err != nil {
				return err
			}
			fmt.Printf("Learned: %q -> %s\n", rule.Pattern, rule.Category)
			return nil
		},
	}

	cmd.Flags().String("merchant", "", "canonical merchant name for the rule")
	cmd.AddCommand(learnListCmd())
	cmd.AddCommand(learnForgetCmd())
	return cmd
}

func learnListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List learned rules",
		RunE: func(_ *cobra.Command, _ []string) error {
			store := loadRuleStore()
			all := store.All()
			if len(all) == 0 {
				fmt.Println("No learned rules.")
				return nil
			}
			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Learned rules (%d)", len(all))))
			for _, r := range all {
				merchant := ""
				if r.NormalizedMerchant != "" {
					merchant = " (" + r.NormalizedMerchant + ")"
				}
				fmt.Printf("  %-40s -> %s%s\n", r.Pattern, r.Category, merchant)
			}
			return nil
		},
	}
}

func learnForgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget [pattern]",
		Short: "Remove a learned rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store := loadRuleStore()
			if !store.Forget(args[0]) {
				return fmt.Errorf("no rule for pattern %q", args[0])
			}
			if err := store.Save(rulesPath()); err != nil {
				return err
			}
			fmt.Printf("Forgot rule for %q\n", args[0])
			return nil
		},
	}
}
