package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/mlsantos/pitaka/internal/cli"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List spending categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, _ := cmd.Flags().GetBool("summary")

			tax, err := buildTaxonomy()
			if err != nil {
				return err
			}

			if !summary {
				fmt.Println(cli.TitleStyle.Render("Categories"))
				for _, name := range tax.CategoryNames() {
					fmt.Printf("  %s\n", name)
				}
				return nil
			}

			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			now := time.Now()
			totals, err := store.GetCategorySummary(ctx, now.AddDate(-1, 0, 0), now)
			if err != nil {
				return err
			}
			if len(totals) == 0 {
				fmt.Println("No transactions in the last 12 months.")
				return nil
			}

			names := make([]string, 0, len(totals))
			for name := range totals {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Println(cli.TitleStyle.Render("Category totals (last 12 months)"))
			for _, name := range names {
				fmt.Printf("  %-28s %14s\n", name, totals[name].StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().Bool("summary", false, "show per-category totals from stored transactions")
	return cmd
}
