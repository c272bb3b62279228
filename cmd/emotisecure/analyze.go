package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run an emotion analysis",
	}

	cmd.AddCommand(analyzeTextCmd())
	cmd.AddCommand(analyzeImageCmd())
	cmd.AddCommand(analyzeCombinedCmd())

	return cmd
}

func analyzeTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "text [input]",
		Short: "Analyze a piece of text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, cleanup, err := buildAnalyzer()
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := analyzer.AnalyzeText(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			printResult("Text analysis", data)
			return nil
		},
	}
}

func analyzeImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "image [path]",
		Short: "Analyze a still frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read frame: %w", err)
			}

			analyzer, cleanup, err := buildAnalyzer()
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := analyzer.AnalyzeImage(cmd.Context(), frame)
			if err != nil {
				return err
			}

			printResult("Frame analysis", data)
			return nil
		},
	}
}

func analyzeCombinedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "combined [text] [image path]",
		Short: "Analyze text and a still frame together",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read frame: %w", err)
			}

			analyzer, cleanup, err := buildAnalyzer()
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := analyzer.AnalyzeCombined(cmd.Context(), args[0], frame)
			if err != nil {
				return err
			}

			// Partial success: report each side on its own
			if res.Text != nil {
				printResult("Text analysis", res.Text)
			} else {
				fmt.Printf("Text analysis failed: %v\n", res.TextErr)
			}

			if res.Image != nil {
				printResult("Frame analysis", res.Image)
			} else {
				fmt.Printf("Frame analysis failed: %v\n", res.ImageErr)
			}

			return nil
		},
	}
}
