package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	got := splitSentences("Reliance rose today. Analysts expect more! Will it hold? Probably.")
	require.Len(t, got, 4)
	assert.Equal(t, "Reliance rose today.", got[0])
	assert.Equal(t, "Analysts expect more!", got[1])
	assert.Equal(t, "Will it hold?", got[2])
	assert.Equal(t, "Probably.", got[3])
}

func TestSplitSentencesKeepsDecimals(t *testing.T) {
	got := splitSentences("NIFTY closed at 22150.35 points. Volumes were high.")
	require.Len(t, got, 2)
	assert.Equal(t, "NIFTY closed at 22150.35 points.", got[0])
}

func TestExtractFactsKeywordOverlap(t *testing.T) {
	docs := []string{
		"Reliance Industries reported strong quarterly earnings this week. Ok.",
		"The weather was pleasant across the region yesterday afternoon there.",
	}
	facts := ExtractFacts("How did Reliance perform?", docs)
	require.Len(t, facts, 1)
	assert.Contains(t, facts[0], "Reliance Industries")
}

func TestExtractFactsShortSentencesSkipped(t *testing.T) {
	docs := []string{"Reliance rose. Reliance gained a lot."}
	facts := ExtractFacts("Reliance news", docs)
	// Both sentences mention the keyword but neither exceeds 30 chars,
	// and the fallback has the same length constraint.
	assert.Empty(t, facts)
}

func TestExtractFactsDedupAndCap(t *testing.T) {
	sentence := "Reliance Industries posted record profits this quarter again."
	doc := ""
	for i := 0; i < 8; i++ {
		doc += sentence + " "
	}
	facts := ExtractFacts("Reliance profits", []string{doc, doc})
	require.Len(t, facts, 1)
	assert.Equal(t, sentence, facts[0])
}

func TestExtractFactsAtMostFive(t *testing.T) {
	doc := "Reliance gained one percent in early trade today. " +
		"Reliance announced a new energy venture this week. " +
		"Reliance shares touched a record high on Monday trading. " +
		"Analysts upgraded Reliance citing strong refining margins. " +
		"Reliance retail arm expanded into two new markets. " +
		"The board of Reliance approved a dividend payout increase."
	facts := ExtractFacts("Reliance update", []string{doc})
	assert.Len(t, facts, maxFacts)
}

func TestExtractFactsIdempotent(t *testing.T) {
	docs := []string{
		"Reliance Industries reported strong quarterly earnings this week. " +
			"The stock gained three percent after the announcement came out.",
	}
	first := ExtractFacts("Reliance earnings", docs)
	second := ExtractFacts("Reliance earnings", docs)
	assert.Equal(t, first, second)
}

func TestExtractFactsFallback(t *testing.T) {
	docs := []string{
		"Banking stocks traded mixed through the volatile session today. " +
			"Auto makers posted modest gains on festive season demand hopes. " +
			"Metal counters slipped as global prices cooled off slightly. " +
			"Pharma names ended flat in quiet trade across the board.",
	}
	facts := ExtractFacts("zzz qqq", docs)
	require.Len(t, facts, maxFallbackFacts)
	assert.Contains(t, facts[0], "Banking stocks")
}

func TestExtractFactsNoDocuments(t *testing.T) {
	assert.Nil(t, ExtractFacts("anything", nil))
}
