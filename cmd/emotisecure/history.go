package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved analyses",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyDeleteCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved analyses, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.List(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("No saved analyses.")
				return nil
			}

			for _, rec := range records {
				echo := rec.InputText
				if len(echo) > 40 {
					echo = echo[:40] + "…"
				}
				fmt.Printf("%s  %-8s  %-10s  %.2f  %s\n",
					rec.ID[:8], rec.AnalysisType, rec.Result.DominantEmotion, rec.Result.Confidence, echo)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum records to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "records to skip")

	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("ID:      %s\n", rec.ID)
			fmt.Printf("Type:    %s\n", rec.AnalysisType)
			fmt.Printf("Saved:   %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
			if rec.InputText != "" {
				fmt.Printf("Input:   %s\n", rec.InputText)
			}
			printResult("Result", &rec.Result)
			return nil
		},
	}
}

func historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println("Deleted.")
			return nil
		},
	}
}
