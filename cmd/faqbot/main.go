package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/chriscorrea/faqbot/internal/app"
	"github.com/chriscorrea/faqbot/internal/config"
	"github.com/chriscorrea/faqbot/internal/engine"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from command flags, the config file and arguments.
// A flag set on the command line wins over the file, which wins over the defaults.
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	flags := cmd.Flags()
	configPath := resolveConfigPath(cmd)

	var file config.File
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return app.Config{}, err
		}
		file = loaded
	}

	cfg := app.Config{
		Threshold:   engine.DefaultThreshold,
		TopK:        engine.DefaultTopK,
		UseDefaults: true,
		TypingDelay: app.DefaultTypingDelay,
		Sources:     file.Sources,
		Selector:    file.Selector,
	}

	// values from the config file
	if file.Threshold != nil {
		cfg.Threshold = *file.Threshold
	}
	if file.TopK != nil {
		cfg.TopK = *file.TopK
	}
	if file.Defaults != nil {
		cfg.UseDefaults = *file.Defaults
	}
	if file.TypingDelay != "" {
		cfg.TypingDelay, _ = file.Delay() // validated by Load
	}

	// explicitly set flags override the file
	if flags.Changed("faqs") {
		cfg.Sources, _ = flags.GetStringArray("faqs")
	}
	if flags.Changed("selector") {
		cfg.Selector, _ = flags.GetString("selector")
	}
	if flags.Changed("threshold") {
		cfg.Threshold, _ = flags.GetFloat64("threshold")
		if cfg.Threshold <= 0 || cfg.Threshold > 1 {
			return app.Config{}, fmt.Errorf("--threshold must be in (0, 1], got %v", cfg.Threshold)
		}
	}
	if flags.Changed("top-k") {
		cfg.TopK, _ = flags.GetInt("top-k")
		if cfg.TopK < 1 {
			return app.Config{}, fmt.Errorf("--top-k must be at least 1, got %d", cfg.TopK)
		}
	}
	if noDefaults, _ := flags.GetBool("no-defaults"); noDefaults {
		cfg.UseDefaults = false
	}

	cfg.IncludeAll, _ = flags.GetBool("include-all")
	cfg.Quiet, _ = flags.GetBool("quiet")
	cfg.Debug, _ = flags.GetBool("debug")

	if jsonFlag, _ := flags.GetBool("json"); jsonFlag {
		cfg.OutputFormat = app.JSON
	}

	// positional arguments form the one-shot question
	cfg.Query = strings.Join(args, " ")

	return cfg, nil
}

// resolveConfigPath returns the --config flag, or the default config path.
// An empty result means no config file can be located.
func resolveConfigPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}

	path, err := config.DefaultPath()
	if err != nil {
		slog.Debug("No default config path", "error", err)
	}
	return path
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "faqbot [question...]",
	Short: "A command-line FAQ assistant",
	Long: `faqbot answers free-text questions from a collection of FAQs by TF-IDF similarity.
FAQs come from a built-in set, "question | answer" text files, URLs of FAQ pages, or standard input.

With a question as arguments, faqbot answers once and exits. Without arguments it starts an interactive chat.

Examples:
  faqbot how do I reset my password
  faqbot -f faq.txt -f https://example.com/help
  faqbot --no-defaults -f faq.txt --json what is java`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		setupLogger(cfg.Debug)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if cfg.Query != "" {
			result, err := app.Run(ctx, cfg)
			if err != nil {
				return fmt.Errorf("faqbot failed: %w", err)
			}
			fmt.Print(result)
			return nil
		}

		eng, err := app.NewEngine(ctx, cfg)
		if err != nil {
			return fmt.Errorf("faqbot failed: %w", err)
		}
		return app.NewChat(eng, cfg, os.Stdin, os.Stdout).Run(ctx)
	},
}

// addSourceFlags registers the flags shared by every command that loads FAQs
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("faqs", "f", nil, "FAQ source: file, URL, or - for stdin (repeatable)")
	cmd.Flags().StringP("selector", "s", "", "CSS selector for questions on HTML pages")
	cmd.Flags().BoolP("include-all", "i", false, "Search whole HTML pages without readability filtering")
	cmd.Flags().Bool("no-defaults", false, "Do not load the built-in FAQs")
	cmd.Flags().String("config", "", "Config file (default ~/.faqbot/config.toml)")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress warning messages")
	cmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = cmd.Flags().MarkHidden("debug")
}

// addMatchFlags registers the matching tunables and output flags of the root command
func addMatchFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("threshold", engine.DefaultThreshold, "Minimum similarity for a direct answer")
	cmd.Flags().Int("top-k", engine.DefaultTopK, "Number of suggestions when no answer is confident")
	cmd.Flags().Bool("json", false, "Output one-shot answers in JSON format")
}

func init() {
	addSourceFlags(rootCmd)
	addMatchFlags(rootCmd)

	rootCmd.AddCommand(addCmd, listCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
