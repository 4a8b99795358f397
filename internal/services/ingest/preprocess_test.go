package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinSight/internal/domain/models"
)

func TestCleanText(t *testing.T) {
	in := "NIFTY 50 rose 1.2% today!  Read more at https://example.com/news  "
	got := CleanText(in)
	assert.Equal(t, "nifty rose today read more at", got)
}

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	got := CleanText("Markets\n\twere   quiet")
	assert.Equal(t, "markets were quiet", got)
}

func TestExtractPriceTokens(t *testing.T) {
	tokens := ExtractPriceTokens("NIFTY at 22,150.35 and Sensex at 74,000 with gains of 1.2")
	require.NotEmpty(t, tokens)
	assert.Equal(t, "22,150.35", tokens[0])
	assert.Contains(t, tokens, "74,000")
}

func TestExtractPriceTokensCap(t *testing.T) {
	text := ""
	for i := 0; i < 15; i++ {
		text += "99 "
	}
	assert.Len(t, ExtractPriceTokens(text), maxPriceTokens)
}

func TestCleanPrices(t *testing.T) {
	got := CleanPrices([]string{"22,150.35", "74,000", "bogus"})
	assert.Equal(t, []float64{22150.35, 74000}, got)
}

func TestRenderDocument(t *testing.T) {
	a := &models.Article{
		Source:    "Moneycontrol",
		Timestamp: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		Text:      "NIFTY 50 closed at 22,150.35 today. See https://example.com",
		Prices:    []float64{22150.35},
	}
	doc := RenderDocument(a)
	assert.Contains(t, doc, "Stock Market Report")
	assert.Contains(t, doc, "Source: Moneycontrol")
	assert.Contains(t, doc, "Market News: nifty closed at today see")
	assert.Contains(t, doc, "Price Values: [22150.35]")
}

func TestBuildIndexedDocument(t *testing.T) {
	a := &models.Article{
		ID:        "a1",
		Source:    "ET Markets",
		Timestamp: time.Now(),
		Text:      "Sensex gained 500 points in early trade.",
	}
	doc := BuildIndexedDocument(a)
	assert.Equal(t, "a1", doc.ID)
	assert.Equal(t, "ET Markets", doc.Source)
	assert.NotEmpty(t, doc.Content)
	assert.Nil(t, doc.Embedding)
}
