package extractor

import (
	"testing"
)

func TestAnalyzeContinuousText(t *testing.T) {
	text := "Primeiro parágrafo sobre contratos aqui mesmo.\n\nSegundo parágrafo sobre contratos também."
	a := Analyze(text)

	if a.StructureType != StructureContinuousText {
		t.Errorf("expected continuous_text, got %q", a.StructureType)
	}
}

func TestAnalyzeListStructure(t *testing.T) {
	text := "itens importantes\n- primeiro item\n- segundo item"
	a := Analyze(text)

	if a.StructureType != StructureList {
		t.Errorf("expected list, got %q", a.StructureType)
	}
}

func TestAnalyzeTabularStructure(t *testing.T) {
	text := "nome|valor|data\nitem|cem|hoje"
	a := Analyze(text)

	if a.StructureType != StructureTabular {
		t.Errorf("expected tabular, got %q", a.StructureType)
	}
}

func TestAnalyzeMixedStructure(t *testing.T) {
	a := Analyze("um bloco só de texto sem marcadores")
	if a.StructureType != StructureMixed {
		t.Errorf("expected mixed, got %q", a.StructureType)
	}
}

func TestMainTopicsFrequencyOrder(t *testing.T) {
	text := "contrato contrato contrato salario salario ferias"
	topics := mainTopics(text)

	if len(topics) != 3 {
		t.Fatalf("expected 3 topics, got %v", topics)
	}
	if topics[0] != "contrato" || topics[1] != "salario" || topics[2] != "ferias" {
		t.Errorf("unexpected topic order: %v", topics)
	}
}

func TestMainTopicsExcludesStopWordsAndShortWords(t *testing.T) {
	topics := mainTopics("o que de da sol lua mar relevante")
	for _, topic := range topics {
		if len(topic) <= 3 {
			t.Errorf("short word leaked into topics: %q", topic)
		}
		if topicStopWords[topic] {
			t.Errorf("stop word leaked into topics: %q", topic)
		}
	}
	if len(topics) != 1 || topics[0] != "relevante" {
		t.Errorf("expected only 'relevante', got %v", topics)
	}
}

func TestMainTopicsCapsAtFive(t *testing.T) {
	topics := mainTopics("alfa bravo charlie delta echo foxtrot golf")
	if len(topics) != 5 {
		t.Errorf("expected at most 5 topics, got %d: %v", len(topics), topics)
	}
}

func TestMainTopicsTieKeepsFirstOccurrence(t *testing.T) {
	topics := mainTopics("zebra aurora zebra aurora")
	if len(topics) != 2 || topics[0] != "zebra" {
		t.Errorf("ties should keep first-occurrence order, got %v", topics)
	}
}

func TestDetectLanguagePortuguese(t *testing.T) {
	if got := detectLanguage("Esta é uma seção para informação sobre o documento"); got != "pt" {
		t.Errorf("expected pt, got %q", got)
	}
}

func TestDetectLanguageEnglish(t *testing.T) {
	if got := detectLanguage("the cat is on the mat and the dog runs with it"); got != "en" {
		t.Errorf("expected en, got %q", got)
	}
}

func TestDetectLanguageTieFavorsPortuguese(t *testing.T) {
	// Neither indicator set matches; the tie goes to Portuguese.
	if got := detectLanguage("xyz qwv"); got != "pt" {
		t.Errorf("expected pt on tie, got %q", got)
	}
}

func TestAnalyzeMetrics(t *testing.T) {
	a := Analyze("O gato dorme. O gato come.")

	m := a.Metrics
	if m.NumWords != 6 {
		t.Errorf("expected 6 words, got %d", m.NumWords)
	}
	// Splitting on terminators leaves a trailing empty segment.
	if m.NumSentences != 3 {
		t.Errorf("expected 3 sentence segments, got %d", m.NumSentences)
	}
	if m.AvgSentenceLength != 2.0 {
		t.Errorf("expected avg 2.0, got %f", m.AvgSentenceLength)
	}
}
