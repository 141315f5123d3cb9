package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/pefolio"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Stage is the lifecycle phase of a fund.
type Stage string

const (
	Investing  Stage = "Investing"
	Maturing   Stage = "Maturing"
	Harvesting Stage = "Harvesting"
)

// DefaultVintage is assumed for deals that never called capital.
const DefaultVintage = 2020

// StageOf returns the phase of a fund of the given vintage seen from
// referenceYear: harvesting after 7 years, investing for the first 3.
func StageOf(vintage, referenceYear int) Stage {
	switch age := referenceYear - vintage; {
	case age > 7:
		return Harvesting
	case age < 3:
		return Investing
	default:
		return Maturing
	}
}

// Profile is what the model is told about a deal.
type Profile struct {
	Deal       string
	AssetClass string
	Underlying string
	Geography  string

	Vintage      int // 0 when unknown
	NAVGrowth    decimal.Decimal
	HasNAVGrowth bool
}

// Profiles returns one profile per deal, in the order of the assets sheet.
func Profiles(deals []pefolio.Deal, aggs []pefolio.Aggregate) []Profile {
	byDeal := make(map[string]pefolio.Aggregate, len(aggs))
	for _, a := range aggs {
		byDeal[a.Deal] = a
	}
	seen := make(map[string]bool)
	var out []Profile
	for _, d := range deals {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		p := Profile{Deal: d.Name, AssetClass: d.AssetClass, Underlying: d.Underlying, Geography: d.Geography}
		if a, ok := byDeal[d.Name]; ok {
			p.Vintage, _ = a.Vintage()
			p.NAVGrowth, p.HasNAVGrowth = a.NAVGrowth, a.HasNAVGrowth
		}
		out = append(out, p)
	}
	return out
}

// Stage returns the lifecycle phase of the deal, seen from referenceYear.
// An unknown vintage is taken as DefaultVintage.
func (p Profile) Stage(referenceYear int) Stage {
	vintage := p.Vintage
	if vintage == 0 {
		vintage = DefaultVintage
	}
	return StageOf(vintage, referenceYear)
}

// SystemPrompt sets the tone of every assessment.
const SystemPrompt = "You are a Senior Risk Analyst. Write a 1-sentence dense financial assessment."

// Prompt returns the user prompt for a deal.
func Prompt(p Profile, marketContext string, referenceYear int) string {
	vintageLabel := "unknown"
	if p.Vintage != 0 {
		vintageLabel = strconv.Itoa(p.Vintage)
	}
	growth := "N/A"
	if p.HasNAVGrowth {
		growth = p.NAVGrowth.Shift(2).StringFixed(1) + "%"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Context: %s\n", marketContext)
	fmt.Fprintf(&b, "Deal: %s (%s - %s)\n", p.Deal, p.AssetClass, p.Underlying)
	fmt.Fprintf(&b, "Profile: Vintage %s (%s Phase) | Geo: %s\n", vintageLabel, p.Stage(referenceYear), p.Geography)
	fmt.Fprintf(&b, "Performance: %s NAV Growth\n", growth)
	b.WriteString("Instruction: Assess performance vs market context. Be brief.")
	return b.String()
}

// Narrative is the assessment of a deal, or the error that prevented it.
type Narrative struct {
	Deal string
	Text string
	Err  error
}

// Writer generates narratives with retries.
type Writer struct {
	Generator     Generator
	MarketContext string
	ReferenceYear int
	Concurrency   int

	Attempts int
	MinWait  time.Duration
	MaxWait  time.Duration
	Logger   *slog.Logger
}

// NewWriter returns a Writer making 3 attempts per deal, waiting 2s then 4s
// between them and never more than 10s.
func NewWriter(g Generator, marketContext string, referenceYear, concurrency int) *Writer {
	return &Writer{
		Generator:     g,
		MarketContext: marketContext,
		ReferenceYear: referenceYear,
		Concurrency:   concurrency,
		Attempts:      3,
		MinWait:       2 * time.Second,
		MaxWait:       10 * time.Second,
		Logger:        slog.Default(),
	}
}

// backoff returns the wait after the given failed attempt, starting at 0.
func (w *Writer) backoff(attempt int) time.Duration {
	d := w.MinWait << attempt
	if d > w.MaxWait || d <= 0 {
		d = w.MaxWait
	}
	return d
}

// Describe writes the narrative of each profile, in order. A deal whose
// attempts all fail gets its error in Narrative.Err; only a cancelled
// context stops the whole run.
func (w *Writer) Describe(ctx context.Context, profiles []Profile) ([]Narrative, error) {
	out := make([]Narrative, len(profiles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(w.Concurrency, 1))
	for i, p := range profiles {
		g.Go(func() error {
			text, err := w.describe(ctx, p)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			out[i] = Narrative{Deal: p.Deal, Text: text, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (w *Writer) describe(ctx context.Context, p Profile) (string, error) {
	prompt := Prompt(p, w.MarketContext, w.ReferenceYear)
	var err error
	for attempt := range w.Attempts {
		if attempt > 0 {
			wait := w.backoff(attempt - 1)
			w.Logger.Warn("narrative failed, retrying", "deal", p.Deal, "attempt", attempt, "wait", wait, "error", err)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}
		var text string
		text, err = w.Generator.Generate(ctx, SystemPrompt, prompt)
		if err == nil {
			return strings.TrimSpace(text), nil
		}
	}
	return "", fmt.Errorf("describing %s after %d attempts: %w", p.Deal, w.Attempts, err)
}
