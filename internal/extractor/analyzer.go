package extractor

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// StructureType classifies the overall shape of a document's text.
type StructureType string

const (
	StructureTabular        StructureType = "tabular"
	StructureList           StructureType = "list"
	StructureContinuousText StructureType = "continuous_text"
	StructureMixed          StructureType = "mixed"
)

// LanguageMetrics holds simple counting statistics over the text.
type LanguageMetrics struct {
	NumSentences      int     `json:"num_sentences"`
	NumWords          int     `json:"num_words"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	Language          string  `json:"language"`
}

// Analysis is the document summary returned at ingestion time.
type Analysis struct {
	StructureType StructureType   `json:"structure_type"`
	MainTopics    []string        `json:"main_topics"`
	Metrics       LanguageMetrics `json:"language_metrics"`
}

var (
	sentenceRe = regexp.MustCompile(`[.!?]+`)
	bulletRe   = regexp.MustCompile(`[•\-*]|\d+\.`)
	tableRe    = regexp.MustCompile(`\||\t|    `)

	topicStopWords = map[string]bool{
		"o": true, "a": true, "os": true, "as": true, "um": true,
		"uma": true, "de": true, "do": true, "da": true, "e": true,
		"que": true,
	}

	ptIndicators = []string{"ção", "são", "ões", "para", "como", "está"}
	enIndicators = []string{"the", "is", "are", "and", "for", "with"}
)

// Analyze computes the structure classification, top topic words, and
// language metrics for extracted text.
func Analyze(text string) Analysis {
	sentences := sentenceRe.Split(text, -1)
	words := strings.Fields(text)

	avg := 0.0
	if len(sentences) > 0 {
		avg = float64(len(words)) / float64(len(sentences))
	}

	return Analysis{
		StructureType: structureType(text),
		MainTopics:    mainTopics(text),
		Metrics: LanguageMetrics{
			NumSentences:      len(sentences),
			NumWords:          len(words),
			AvgSentenceLength: math.Round(avg*100) / 100,
			Language:          detectLanguage(text),
		},
	}
}

// mainTopics returns the five most frequent words longer than three
// characters, excluding a small stop-word set. Ties keep frequency
// order stable by first occurrence.
func mainTopics(text string) []string {
	freq := make(map[string]int)
	var order []string

	for _, word := range strings.Fields(strings.ToLower(text)) {
		if topicStopWords[word] || len(word) <= 3 {
			continue
		}
		if freq[word] == 0 {
			order = append(order, word)
		}
		freq[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})

	if len(order) > 5 {
		order = order[:5]
	}
	return order
}

func structureType(text string) StructureType {
	lines := strings.Split(text, "\n")
	hasTables := len(tableRe.FindAllString(text, -1)) > len(lines)/2
	hasBullets := bulletRe.MatchString(text)

	paragraphs := 0
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}

	switch {
	case hasTables:
		return StructureTabular
	case hasBullets:
		return StructureList
	case paragraphs > 1:
		return StructureContinuousText
	default:
		return StructureMixed
	}
}

// detectLanguage guesses pt vs en by counting indicator substrings;
// Portuguese wins ties.
func detectLanguage(text string) string {
	lower := strings.ToLower(text)

	ptCount := 0
	for _, ind := range ptIndicators {
		if strings.Contains(lower, ind) {
			ptCount++
		}
	}
	enCount := 0
	for _, ind := range enIndicators {
		if strings.Contains(lower, ind) {
			enCount++
		}
	}

	if ptCount >= enCount {
		return "pt"
	}
	return "en"
}
