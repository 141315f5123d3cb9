package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/pefolio/docs"
	"github.com/google/subcommands"
)

// topicCmd prints the embedded pec documentation.
type topicCmd struct {
	raw bool
}

func (*topicCmd) Name() string { return "topic" }
func (*topicCmd) Synopsis() string {
	return "read about the workbook layout, configuration, audit report and extensions"
}
func (*topicCmd) Usage() string {
	topics, _ := docs.GetAllTopics()
	return fmt.Sprintf(`pec topic [-raw] [<topic>...]

  Print the pec documentation. Without a topic, print the overview; "*"
  prints every topic in turn.

  Topics: %s
`, strings.Join(topics, ", "))
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print the markdown source instead of rendering it")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nRun 'pec help topic' for the list of topics.\n", err)
		return subcommands.ExitUsageError
	}
	if c.raw {
		fmt.Print(doc)
		return subcommands.ExitSuccess
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
