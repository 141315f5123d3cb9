package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pefolio/date"
	"github.com/etnz/pefolio/renderer"
	"github.com/google/subcommands"
)

// auditCmd prints the commitment audit without writing any output.
type auditCmd struct {
	sourceFlags
	style string
	width int
}

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "print the commitment audit of the workbook" }
func (*auditCmd) Usage() string {
	return `pec audit [-data <workbook>] [-style <style>] [-width <columns>]

  Compare the reported commitment of each deal with the one computed from
  its events and print the report. Nothing is written.
`
}

func (c *auditCmd) SetFlags(f *flag.FlagSet) {
	c.sourceFlags.SetFlags(f)
	f.StringVar(&c.style, "style", "", "glamour style (dark, light, notty, ...). Detected from the terminal when empty.")
	f.IntVar(&c.width, "width", terminalWidth, "word wrap of the report")
}

func (c *auditCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return execute(ctx, func(context.Context) error {
		res, err := consolidate(cfg)
		if err != nil {
			return err
		}
		md, err := renderer.RenderAudit(renderer.NewAudit("audit", date.Today().String(), res))
		if err != nil {
			return err
		}
		out, err := renderer.Terminal(md, c.style, c.width)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	})
}
