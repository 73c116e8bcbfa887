// Package summary builds short extractive summaries from full article text
// by scoring sentences against club keywords and action verbs. The scoring
// weights and length thresholds here are deliberate: a cheap, explainable
// heuristic rather than a model-based summarizer.
package summary

import (
	"regexp"
	"sort"
	"strings"
)

// Fallback is returned whenever no usable summary can be assembled.
const Fallback = "Read the full article for complete details on this Tottenham story."

const (
	minInputLen    = 200
	minSentenceLen = 30
	maxSentenceLen = 300
	maxCandidates  = 15
	longSentence   = 200
	targetLen      = 380
	earlyStopLen   = 250
	minSummaryLen  = 50
)

var (
	whitespaceExpr = regexp.MustCompile(`\s+`)

	// Call-to-action clutter stripped before sentence splitting, each match
	// running up to the next sentence boundary.
	clutterExprs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)READ MORE:[^.]*`),
		regexp.MustCompile(`(?i)CLICK HERE[^.]*`),
		regexp.MustCompile(`(?i)Sign up[^.]*`),
		regexp.MustCompile(`(?i)Subscribe[^.]*`),
	}

	// Sentence boundary: terminal punctuation, whitespace, then a capital.
	boundaryExpr = regexp.MustCompile(`[.!?]\s+[A-Z]`)
)

// Summarizer scores and selects sentences for a bounded summary.
type Summarizer struct {
	keywords    []string
	actionWords []string
}

// New builds a summarizer from club keyword and action-verb lists.
func New(keywords, actionWords []string) *Summarizer {
	return &Summarizer{keywords: lowerAll(keywords), actionWords: lowerAll(actionWords)}
}

type scoredSentence struct {
	score    float64
	text     string
	position int
}

// Summarize condenses fullText into a short summary. Inputs shorter than
// 200 characters yield the fixed fallback sentence; the result is never
// empty and always ends with terminal punctuation.
func (s *Summarizer) Summarize(fullText string) string {
	if len(fullText) < minInputLen {
		return Fallback
	}

	text := normalizeWhitespace(fullText)
	for _, expr := range clutterExprs {
		text = expr.ReplaceAllString(text, "")
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return Fallback
	}

	scored := s.scoreSentences(sentences)
	if len(scored) == 0 {
		return Fallback
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	parts := assemble(scored)
	if len(parts) == 0 {
		for _, candidate := range scored[:min(3, len(scored))] {
			if len(candidate.text) <= 400 {
				return candidate.text
			}
		}
		return Fallback
	}

	result := normalizeWhitespace(strings.Join(parts, " "))
	if !strings.HasSuffix(result, ".") && !strings.HasSuffix(result, "!") && !strings.HasSuffix(result, "?") {
		result += "."
	}

	if len(result) <= minSummaryLen {
		return Fallback
	}
	return result
}

func (s *Summarizer) scoreSentences(sentences []string) []scoredSentence {
	var scored []scoredSentence
	for i, sentence := range sentences {
		if i >= maxCandidates {
			break
		}

		lower := strings.ToLower(sentence)
		var score float64

		for _, keyword := range s.keywords {
			score += float64(strings.Count(lower, keyword)) * 5
		}
		for _, word := range s.actionWords {
			if strings.Contains(lower, word) {
				score += 3
			}
		}

		// Earlier sentences carry more of the story.
		score += float64(maxCandidates-i) * 0.5

		if len(sentence) > longSentence {
			score -= 2
		}

		if score > 0 {
			scored = append(scored, scoredSentence{score: score, text: sentence, position: i})
		}
	}
	return scored
}

// assemble greedily accumulates sentences in score order until the target
// length would be exceeded. A sentence that overflows while the summary is
// still short may be truncated at a word boundary past 70% of the remaining
// budget; otherwise overflow ends accumulation once enough text is present.
func assemble(scored []scoredSentence) []string {
	var parts []string
	total := 0

	for _, candidate := range scored {
		sentenceLen := len(candidate.text)

		if total+sentenceLen > targetLen {
			if total >= minInputLen {
				break
			}
			remaining := targetLen - total
			if remaining > minSummaryLen {
				truncated := strings.TrimSpace(candidate.text[:remaining])
				lastSpace := strings.LastIndex(truncated, " ")
				if float64(lastSpace) > float64(remaining)*0.7 {
					parts = append(parts, truncated[:lastSpace]+"...")
					break
				}
			}
			continue
		}

		parts = append(parts, candidate.text)
		total += sentenceLen

		if total >= earlyStopLen {
			break
		}
	}

	return parts
}

// splitSentences cuts text at punctuation-then-capital boundaries and keeps
// only segments of plausible sentence length.
func splitSentences(text string) []string {
	var segments []string
	start := 0
	for _, loc := range boundaryExpr.FindAllStringIndex(text, -1) {
		// Split right after the punctuation; the capital starts the next segment.
		segments = append(segments, text[start:loc[0]+1])
		start = loc[1] - 1
	}
	segments = append(segments, text[start:])

	var kept []string
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if len(segment) > minSentenceLen && len(segment) < maxSentenceLen {
			kept = append(kept, segment)
		}
	}
	return kept
}

func normalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceExpr.ReplaceAllString(text, " "))
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}
