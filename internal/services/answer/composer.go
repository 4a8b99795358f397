package answer

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// NoDocumentsAnswer is returned when retrieval found nothing usable.
	NoDocumentsAnswer = "Sorry, I could not find relevant information to answer your question."
	// NoFactsAnswer is returned when documents exist but no sentence
	// could be tied to the question.
	NoFactsAnswer = "I found some relevant documents but could not extract specific facts. Please try rephrasing your question."

	maxFiguresPerDoc = 4
	maxFiguresShown  = 6
)

// monetaryPattern matches currency amounts, percentages, and magnitude
// figures (crore/lakh/million/billion) as they appear in market news.
var monetaryPattern = regexp.MustCompile(
	`Rs\s?[\d,]+(?:\.\d+)?|USD\s?[\d.]+\s?billion|[\d,]+(?:\.\d+)?%|[\d,]+(?:\.\d+)?\s(?:crore|lakh|million|billion)`)

// Compose builds the compact answer: bulleted facts followed by a
// source attribution line. Sources are deduplicated in first-seen
// order so equal inputs always produce identical output.
func Compose(question string, documents []string, sources []string) string {
	if len(documents) == 0 {
		return NoDocumentsAnswer
	}

	facts := ExtractFacts(question, documents)
	if len(facts) == 0 {
		return NoFactsAnswer
	}

	lines := make([]string, 0, len(facts))
	for _, fact := range facts {
		lines = append(lines, "• "+fact)
	}

	answer := strings.Join(lines, "\n")
	if unique := dedupeFirstSeen(sources); len(unique) > 0 {
		answer += "\n\n**Sources:** " + strings.Join(unique, ", ")
	}
	return answer
}

// ComposeReport builds the long-form report variant with extracted
// monetary figures and a per-line source listing.
func ComposeReport(question string, documents []string, sources []string) string {
	if len(documents) == 0 {
		return NoDocumentsAnswer
	}

	facts := ExtractFacts(question, documents)
	factsText := "No specific facts extracted."
	if len(facts) > 0 {
		factsText = strings.Join(facts, "\n• ")
	}

	figures := extractFigures(documents)
	figuresText := "See facts above"
	if len(figures) > 0 {
		figuresText = strings.Join(figures, ", ")
	}

	sourcesText := "NIFTY Market Data"
	if unique := dedupeFirstSeen(sources); len(unique) > 0 {
		sourcesText = strings.Join(unique, "\n  - ")
	}

	return fmt.Sprintf(`
===================================================
  Market Answer — NIFTY 50 News Retrieval
===================================================

Question: %s

---------------------------------------------------
Key Facts From Retrieved Documents:
---------------------------------------------------
• %s

---------------------------------------------------
Key Numbers & Prices Mentioned:
---------------------------------------------------
  %s

---------------------------------------------------
Sources Used:
---------------------------------------------------
  - %s

---------------------------------------------------
Summary:
---------------------------------------------------
Based on the retrieved market data, the question "%s"
relates to the above facts. The information is sourced from
%d relevant document(s) in the knowledge base.
===================================================
`, question, factsText, figuresText, sourcesText, question, len(documents))
}

// extractFigures pools monetary figures across documents, at most four
// per document and six in total, deduplicated in first-seen order.
func extractFigures(documents []string) []string {
	var pooled []string
	for _, doc := range documents {
		found := monetaryPattern.FindAllString(doc, -1)
		if len(found) > maxFiguresPerDoc {
			found = found[:maxFiguresPerDoc]
		}
		pooled = append(pooled, found...)
	}

	unique := dedupeFirstSeen(pooled)
	if len(unique) > maxFiguresShown {
		unique = unique[:maxFiguresShown]
	}
	return unique
}

func dedupeFirstSeen(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
