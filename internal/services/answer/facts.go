package answer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxFacts          = 5
	maxFallbackFacts  = 3
	minSentenceLength = 30
	minKeywordLength  = 4
)

var keywordPattern = regexp.MustCompile(`\b\w{4,}\b`)

// ExtractFacts picks sentences from the retrieved documents that share
// vocabulary with the question. Keywords are lowercased word tokens of
// at least four characters; a sentence qualifies when it contains any
// keyword and is longer than 30 characters. Duplicates are dropped in
// first-seen order and at most five facts are returned. When no
// sentence overlaps with the question, the first qualifying sentences
// of the first document stand in.
func ExtractFacts(question string, documents []string) []string {
	if len(documents) == 0 {
		return nil
	}

	keywords := questionKeywords(question)

	var facts []string
	seen := make(map[string]struct{})
	for _, doc := range documents {
		for _, sentence := range splitSentences(doc) {
			if len(facts) >= maxFacts {
				return facts
			}
			if utf8.RuneCountInString(sentence) <= minSentenceLength {
				continue
			}
			if !containsAnyKeyword(sentence, keywords) {
				continue
			}
			if _, dup := seen[sentence]; dup {
				continue
			}
			seen[sentence] = struct{}{}
			facts = append(facts, sentence)
		}
	}

	if len(facts) > 0 {
		return facts
	}
	return fallbackFacts(documents[0])
}

// fallbackFacts takes the leading long-enough sentences of one document.
func fallbackFacts(doc string) []string {
	var facts []string
	for _, sentence := range splitSentences(doc) {
		if len(facts) >= maxFallbackFacts {
			break
		}
		if utf8.RuneCountInString(sentence) > minSentenceLength {
			facts = append(facts, sentence)
		}
	}
	return facts
}

func questionKeywords(question string) []string {
	tokens := keywordPattern.FindAllString(strings.ToLower(question), -1)
	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) >= minKeywordLength {
			keywords = append(keywords, tok)
		}
	}
	return keywords
}

func containsAnyKeyword(sentence string, keywords []string) bool {
	lowered := strings.ToLower(sentence)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// splitSentences breaks text on `.` `!` `?` followed by whitespace,
// keeping the terminator with the preceding sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && isSpaceByte(text[i+1]) {
			s := strings.TrimSpace(text[start : i+1])
			if s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
