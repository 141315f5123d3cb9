package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/etnz/pefolio/agent"
	"github.com/etnz/pefolio/config"
	"github.com/etnz/pefolio/date"
	"github.com/etnz/pefolio/renderer"
	"github.com/google/subcommands"
)

// describeCmd asks the model for a short assessment of every deal.
type describeCmd struct {
	sourceFlags
	context string
	output  string
}

func (*describeCmd) Name() string     { return "describe" }
func (*describeCmd) Synopsis() string { return "write an assessment of each deal with Gemini" }
func (*describeCmd) Usage() string {
	return `pec describe [-data <workbook>] [-context <text>] [-o <file.md>]

  Consolidate the workbook then ask the configured model for a one
  sentence risk assessment of each deal, given its vintage, lifecycle
  phase and NAV growth. The API key is read from GEMINI_API_KEY.
`
}

func (c *describeCmd) SetFlags(f *flag.FlagSet) {
	c.sourceFlags.SetFlags(f)
	f.StringVar(&c.context, "context", "", "Market context given to the model. Overrides llm.market_context.")
	f.StringVar(&c.output, "o", "", "Write the markdown to this file instead of printing it.")
}

func (c *describeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.context != "" {
		cfg.LLM.MarketContext = c.context
	}
	return execute(ctx, func(ctx context.Context) error { return c.describe(ctx, cfg) })
}

func (c *describeCmd) describe(ctx context.Context, cfg config.Config) error {
	res, err := consolidate(cfg)
	if err != nil {
		return err
	}

	expert, err := agent.NewExpert(ctx, cfg.LLM.Model)
	if err != nil {
		return err
	}
	year := cfg.LLM.ReferenceYear
	if year == 0 {
		year = date.Today().Year()
	}
	w := agent.NewWriter(expert, cfg.LLM.MarketContext, year, cfg.LLM.Concurrency)

	profiles := agent.Profiles(res.Deals, res.Aggregates)
	slog.Info("describing deals", "deals", len(profiles), "model", cfg.LLM.Model)
	narratives, err := w.Describe(ctx, profiles)
	if err != nil {
		return err
	}

	view := &renderer.Narratives{Date: date.Today().String(), Model: cfg.LLM.Model}
	for i, n := range narratives {
		row := renderer.NarrativeRow{Deal: n.Deal, Stage: string(profiles[i].Stage(year)), Text: n.Text}
		if n.Err != nil {
			slog.Error("no assessment", "deal", n.Deal, "error", n.Err)
			row.Error = n.Err.Error()
		}
		view.Deals = append(view.Deals, row)
	}
	md, err := renderer.RenderNarratives(view)
	if err != nil {
		return err
	}

	if c.output == "" {
		printMarkdown(md)
		return nil
	}
	if err := os.WriteFile(c.output, []byte(md), 0644); err != nil {
		return fmt.Errorf("writing %q: %w", c.output, err)
	}
	fmt.Printf("Wrote %d assessments to %s\n", len(view.Deals), c.output)
	return nil
}
