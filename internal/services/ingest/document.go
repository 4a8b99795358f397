package ingest

import (
	"fmt"
	"strings"
	"time"

	"FinSight/internal/domain/models"
)

// RenderDocument turns a raw article into the report-shaped text that
// gets embedded and indexed. The cleaned text and price list are
// folded into a fixed template so every indexed document has the same
// shape.
func RenderDocument(a *models.Article) string {
	cleanText := CleanText(a.Text)
	prices := a.Prices
	if len(prices) == 0 {
		prices = CleanPrices(ExtractPriceTokens(a.Text))
	}

	return fmt.Sprintf(`Stock Market Report
Source: %s
Date: %s
Market News: %s
Price Values: %s`,
		a.Source,
		a.Timestamp.Format(time.RFC3339),
		cleanText,
		formatPrices(prices))
}

// BuildIndexedDocument renders an article and pairs it with its
// metadata, leaving the embedding to be filled in by the caller.
func BuildIndexedDocument(a *models.Article) models.IndexedDocument {
	return models.IndexedDocument{
		ID:        a.ID,
		Content:   RenderDocument(a),
		Source:    a.Source,
		Timestamp: a.Timestamp,
	}
}

func formatPrices(prices []float64) string {
	if len(prices) == 0 {
		return "[]"
	}
	parts := make([]string, len(prices))
	for i, p := range prices {
		parts[i] = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", p), "0"), ".")
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
