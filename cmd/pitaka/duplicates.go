package main

import (
	"fmt"

	"github.com/mlsantos/pitaka/internal/cli"
	"github.com/mlsantos/pitaka/internal/dupes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func duplicatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Find and resolve duplicate transactions",
	}

	cmd.AddCommand(duplicatesListCmd())
	cmd.AddCommand(duplicatesResolveCmd())
	cmd.AddCommand(duplicatesUniqueCmd())
	cmd.AddCommand(duplicatesAutoCmd())
	cmd.AddCommand(duplicatesResetCmd())

	return cmd
}

func duplicatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List duplicate groups among stored transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txns, err := store.GetAllTransactions(ctx)
			if err != nil {
				return err
			}

			resolver := loadResolver()
			matches := resolver.FilterMatches(buildDetector().FindDuplicates(resolver.FilterTransactions(txns)))
			groups := dupes.GroupDuplicates(matches)
			if len(groups) == 0 {
				fmt.Println(cli.SuccessStyle.Render("No duplicate groups found."))
				return nil
			}

			for i, group := range groups {
				fmt.Print(cli.RenderDuplicateGroup(i, group))
			}
			fmt.Printf("\n%d group(s), %d pairwise match(es)\n", len(groups), len(matches))
			return nil
		},
	}
}

func duplicatesResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [transaction-ids...]",
		Short: "Mark a group as duplicates, keeping one transaction",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keep, _ := cmd.Flags().GetString("keep")
			reason, _ := cmd.Flags().GetString("reason")
			if keep == "" {
				keep = args[0]
			}

			resolver := loadResolver()
			if err := resolver.MarkDuplicate(args, keep, reason); err != nil {
				return err
			}
			if err := resolver.Save(resolutionsPath()); err != nil {
				return err
			}
			fmt.Printf("Resolved %d transactions, keeping %s\n", len(args), keep)
			return nil
		},
	}
	cmd.Flags().String("keep", "", "transaction ID to keep (default: first listed)")
	cmd.Flags().String("reason", "", "optional note for the resolution")
	return cmd
}

func duplicatesUniqueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unique [transaction-ids...]",
		Short: "Mark transactions as not duplicates of each other",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, _ := cmd.Flags().GetString("reason")

			resolver := loadResolver()
			if err := resolver.MarkUnique(args, reason); err != nil {
				return err
			}
			if err := resolver.Save(resolutionsPath()); err != nil {
				return err
			}
			fmt.Printf("Marked %d transactions as unique\n", len(args))
			return nil
		},
	}
	cmd.Flags().String("reason", "", "optional note for the resolution")
	return cmd
}

func duplicatesAutoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Auto-resolve confident duplicate matches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			minConfidence, _ := cmd.Flags().GetFloat64("min-confidence")
			if minConfidence <= 0 {
				minConfidence = viper.GetFloat64("duplicates.auto_resolve_confidence")
			}

			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txns, err := store.GetAllTransactions(ctx)
			if err != nil {
				return err
			}

			resolver := loadResolver()
			matches := resolver.FilterMatches(buildDetector().FindDuplicates(txns))
			resolved := resolver.AutoResolve(matches, true, minConfidence)
			if resolved > 0 {
				if err := resolver.Save(resolutionsPath()); err != nil {
					return err
				}
			}
			fmt.Printf("Auto-resolved %d duplicate group(s) at confidence >= %.2f\n", resolved, minConfidence)
			return nil
		},
	}
	cmd.Flags().Float64("min-confidence", 0, "auto-resolve threshold (default from config)")
	return cmd
}

func duplicatesResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all duplicate resolutions",
		RunE: func(_ *cobra.Command, _ []string) error {
			resolver := dupes.NewResolver()
			if err := resolver.Save(resolutionsPath()); err != nil {
				return err
			}
			fmt.Println("Cleared all duplicate resolutions.")
			return nil
		},
	}
}
