package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/chriscorrea/faqbot/internal/app"
	"github.com/chriscorrea/faqbot/internal/config"
	"github.com/chriscorrea/faqbot/internal/faq"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <question> <answer>",
	Short: "Append an FAQ to a file",
	Long: `Append a question and its answer to a "question | answer" FAQ file.
The file is created if it does not exist.

Example:
  faqbot add --file faq.txt "How to cancel order" "Open your orders page and press Cancel."`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		quiet, _ := cmd.Flags().GetBool("quiet")
		setupLogger(false)

		n, err := appendPair(path, args[0], args[1])
		if err != nil {
			return err
		}

		if !quiet {
			fmt.Printf("Added FAQ to %s (%d FAQs).\n", path, n)
		}
		return nil
	},
}

// appendPair adds one pair to the FAQ file at path and returns the new pair count
func appendPair(path, question, answer string) (int, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return 0, fmt.Errorf("both a question and an answer are required")
	}

	pairs, err := faq.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, err
	}

	pairs = append(pairs, faq.Pair{Question: question, Answer: answer})
	if err := faq.WriteFile(path, pairs); err != nil {
		return 0, err
	}
	return len(pairs), nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the loaded FAQs",
	Long: `Print every FAQ that faqbot would answer from, one "question | answer" per line.
Sources are resolved the same way as for the root command.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		setupLogger(cfg.Debug)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		eng, err := app.NewEngine(ctx, cfg)
		if err != nil {
			return fmt.Errorf("faqbot failed: %w", err)
		}
		return faq.Write(os.Stdout, eng.FAQs())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the current settings to the config file",
	Long: `Write the effective settings to the config file (default ~/.faqbot/config.toml).
Flags given to this command replace the corresponding values already in the file.

Example:
  faqbot config --threshold 0.25 --top-k 5 -f ~/faq.txt`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		setupLogger(cfg.Debug)

		path := resolveConfigPath(cmd)
		if path == "" {
			return fmt.Errorf("no config path; use --config")
		}

		if err := saveSettings(path, cfg); err != nil {
			return err
		}

		if !cfg.Quiet {
			fmt.Printf("Settings written to %s.\n", path)
		}
		return nil
	},
}

// saveSettings stores the persistent part of cfg as a config file at path
func saveSettings(path string, cfg app.Config) error {
	threshold := cfg.Threshold
	topK := cfg.TopK
	useDefaults := cfg.UseDefaults

	return config.Save(path, config.File{
		Threshold:   &threshold,
		TopK:        &topK,
		Sources:     cfg.Sources,
		Selector:    cfg.Selector,
		Defaults:    &useDefaults,
		TypingDelay: cfg.TypingDelay.String(),
	})
}

func init() {
	addCmd.Flags().String("file", app.DefaultSavePath, "FAQ file to append to")
	addCmd.Flags().BoolP("quiet", "q", false, "Suppress the confirmation message")

	addSourceFlags(listCmd)

	addSourceFlags(configCmd)
	configCmd.Flags().Float64("threshold", 0, "Minimum similarity for a direct answer")
	configCmd.Flags().Int("top-k", 0, "Number of suggestions when no answer is confident")
}
