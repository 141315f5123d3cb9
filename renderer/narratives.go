package renderer

// Narratives is the view of the deal assessments.
type Narratives struct {
	Date  string
	Model string
	Deals []NarrativeRow
}

// NarrativeRow is the assessment of one deal. Error is set instead of Text
// when none could be written.
type NarrativeRow struct {
	Deal  string
	Stage string
	Text  string
	Error string
}

// RenderNarratives renders the deal assessments to a markdown string.
func RenderNarratives(n *Narratives) (string, error) {
	return renderTemplate("narratives", "narratives.md", nil, n)
}
