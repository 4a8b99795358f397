package answer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeNoDocuments(t *testing.T) {
	got := Compose("any question", nil, nil)
	assert.Equal(t, NoDocumentsAnswer, got)
}

func TestComposeNoFacts(t *testing.T) {
	got := Compose("zzz", []string{"Short. Tiny. Small."}, []string{"Moneycontrol"})
	assert.Equal(t, NoFactsAnswer, got)
}

func TestComposeBulletsAndSources(t *testing.T) {
	docs := []string{
		"Reliance Industries reported strong quarterly earnings this week. " +
			"The refining segment drove most of the Reliance profit growth.",
	}
	got := Compose("Reliance earnings", docs, []string{"Moneycontrol", "ET Markets", "Moneycontrol"})

	lines := strings.Split(got, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "• "))
	assert.Contains(t, got, "**Sources:** Moneycontrol, ET Markets")
	// Duplicate source listed once.
	assert.Equal(t, 1, strings.Count(got, "Moneycontrol"))
}

func TestComposeDeterministicSourceOrder(t *testing.T) {
	docs := []string{"Reliance Industries reported strong quarterly earnings this week."}
	sources := []string{"B Source", "A Source"}
	first := Compose("Reliance earnings", docs, sources)
	second := Compose("Reliance earnings", docs, sources)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "**Sources:** B Source, A Source")
}

func TestComposeReportSections(t *testing.T) {
	docs := []string{
		"TCS reported revenue of Rs 59,381 crore for the quarter period. " +
			"The operating margin improved to 24.5% against estimates given.",
	}
	got := ComposeReport("TCS quarterly results", docs, []string{"ET Markets"})

	assert.Contains(t, got, "Question: TCS quarterly results")
	assert.Contains(t, got, "Key Facts From Retrieved Documents:")
	assert.Contains(t, got, "Key Numbers & Prices Mentioned:")
	assert.Contains(t, got, "- ET Markets")
	assert.Contains(t, got, "1 relevant document(s)")
}

func TestExtractFigures(t *testing.T) {
	docs := []string{
		"Revenue came in at Rs 59,381 crore while margin held at 24.5% flat. " +
			"The deal was valued at USD 2.5 billion by the management team.",
	}
	figures := extractFigures(docs)
	require.NotEmpty(t, figures)
	assert.Contains(t, figures, "Rs 59,381")
	assert.Contains(t, figures, "24.5%")
	assert.Contains(t, figures, "USD 2.5 billion")
}

func TestExtractFiguresCaps(t *testing.T) {
	doc := "Gains of 1% then 2% then 3% then 4% then 5% then 6% were seen."
	figures := extractFigures([]string{doc, "Additional moves of 7% and 8% and 9% followed later."})
	assert.LessOrEqual(t, len(figures), maxFiguresShown)
	// Per-document cap keeps only the first four figures of each doc.
	assert.NotContains(t, figures, "5%")
}
