package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"slidecraft/config"
	"slidecraft/internal/generation"
	"slidecraft/internal/logger"
	"slidecraft/services"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slidecraft-generate",
		Short: "Generate slide decks from a prompt without a database",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}
	cmd.AddCommand(newRunCmd())
	return cmd
}

type runOptions struct {
	configPath string
	title      string
	prompt     string
	slides     int
	theme      string
	transition string
	out        string
	verbose    bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the generation pipeline once and print the slides as JSON",
		Example: `  slidecraft-generate run --title "Solar Power" --prompt "solar energy for homeowners" --slides 6
  slidecraft-generate run --title "Q3" --prompt "quarterly results" --theme dark --out deck.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (defaults to environment only)")
	cmd.Flags().StringVar(&opts.title, "title", "", "deck title")
	cmd.Flags().StringVar(&opts.prompt, "prompt", "", "what the deck is about")
	cmd.Flags().IntVar(&opts.slides, "slides", generation.DefaultSlides, "number of slides (3-15)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "light, dark or gradient")
	cmd.Flags().StringVar(&opts.transition, "transition", "", "fade, slide, zoom, flip or cube")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write JSON to this file instead of stdout")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline progress to stderr")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *runOptions) error {
	if opts.slides < generation.MinSlides || opts.slides > generation.MaxSlides {
		return fmt.Errorf("--slides must be between %d and %d", generation.MinSlides, generation.MaxSlides)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	log := logger.NewNop()
	if opts.verbose {
		if log, err = logger.New("development"); err != nil {
			return err
		}
		defer log.Sync()
	}

	ctx := cmd.Context()
	orch, closeProviders, err := services.NewOrchestrator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeProviders()

	progress := func(p generation.Progress) {
		if opts.verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %d/%d %s\n", p.Stage, p.Index, p.Total, p.Title)
		}
	}

	slides, err := orch.Generate(ctx, generation.Request{
		DeckTitle:  opts.title,
		Prompt:     opts.prompt,
		Count:      opts.slides,
		Theme:      opts.theme,
		Transition: opts.transition,
	}, progress)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(slides)
}
