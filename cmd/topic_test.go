package cmd

import (
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/etnz/pefolio/docs"
	"github.com/google/subcommands"
)

func TestTopicUsage(t *testing.T) {
	topics, err := docs.GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() unexpected error: %v", err)
	}
	usage := (&topicCmd{}).Usage()
	for _, topic := range topics {
		if !strings.Contains(usage, topic) {
			t.Errorf("Usage() does not list topic %q:\n%s", topic, usage)
		}
	}
}

func TestTopic_Unknown(t *testing.T) {
	c := &topicCmd{}
	f := flag.NewFlagSet("topic", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse([]string{"-raw", "ledger"}); err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if got := c.Execute(context.Background(), f); got != subcommands.ExitUsageError {
		t.Errorf("Execute() = %v, want %v", got, subcommands.ExitUsageError)
	}
}
