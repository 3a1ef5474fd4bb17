package extractor

import (
	"strings"
	"testing"
)

func TestSegmentNoHeadings(t *testing.T) {
	raw := "apenas texto corrido\nsem nenhum título\nem três linhas"
	doc := Segment(raw)

	titles := doc.Titles()
	if len(titles) != 1 || titles[0] != DefaultSection {
		t.Fatalf("expected single %q section, got %v", DefaultSection, titles)
	}
	body, ok := doc.Body(DefaultSection)
	if !ok {
		t.Fatal("main section missing")
	}
	if body != raw {
		t.Errorf("main body should carry the full text, got %q", body)
	}
}

func TestSegmentUppercaseHeading(t *testing.T) {
	raw := "INTRODUÇÃO\ntexto da introdução\nCONCLUSÃO\ntexto final"
	doc := Segment(raw)

	titles := doc.Titles()
	if len(titles) != 2 {
		t.Fatalf("expected 2 sections, got %v", titles)
	}
	if titles[0] != "INTRODUÇÃO" || titles[1] != "CONCLUSÃO" {
		t.Errorf("unexpected titles: %v", titles)
	}
}

func TestSegmentAccentedUppercaseHeading(t *testing.T) {
	raw := "SEÇÃO Á É\ncorpo da seção acentuada"
	doc := Segment(raw)

	titles := doc.Titles()
	if len(titles) != 1 || titles[0] != "SEÇÃO Á É" {
		t.Fatalf("accented all-caps line should be a heading, got %v", titles)
	}
	body, _ := doc.Body("SEÇÃO Á É")
	if body != "corpo da seção acentuada" {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestSegmentNumberedHeading(t *testing.T) {
	raw := "1. Objetivos\ncorpo da primeira\n2.1 Metas\ncorpo da segunda"
	doc := Segment(raw)

	titles := doc.Titles()
	if len(titles) != 2 {
		t.Fatalf("expected 2 sections, got %v", titles)
	}
	if titles[0] != "1. Objetivos" {
		t.Errorf("expected numbered heading, got %q", titles[0])
	}
}

func TestSegmentLabeledHeading(t *testing.T) {
	doc := Segment("Capitulo 1\nconteúdo do capítulo")
	titles := doc.Titles()
	if len(titles) != 1 || titles[0] != "Capitulo 1" {
		t.Errorf("expected labeled heading section, got %v", titles)
	}
}

func TestSegmentTextBeforeFirstHeading(t *testing.T) {
	doc := Segment("preâmbulo solto\nRESUMO\ncorpo do resumo")

	body, ok := doc.Body(DefaultSection)
	if !ok {
		t.Fatal("expected preamble under the default section")
	}
	if body != "preâmbulo solto" {
		t.Errorf("unexpected preamble body: %q", body)
	}
	if _, ok := doc.Body("RESUMO"); !ok {
		t.Error("expected RESUMO section")
	}
}

func TestSegmentLongUppercaseLineIsBody(t *testing.T) {
	long := strings.Repeat("A", 120)
	doc := Segment(long + "\nmais texto")
	if len(doc.Titles()) != 1 || doc.Titles()[0] != DefaultSection {
		t.Errorf("over-long upper-case line must not become a heading: %v", doc.Titles())
	}
}

func TestSegmentDigitsOnlyLineIsBody(t *testing.T) {
	doc := Segment("12345\ntexto")
	if len(doc.Titles()) != 1 || doc.Titles()[0] != DefaultSection {
		t.Errorf("digits-only line must not become a heading: %v", doc.Titles())
	}
}

func TestSegmentDuplicateHeadingOverwrites(t *testing.T) {
	raw := "RESUMO\nprimeiro corpo\nRESUMO\nsegundo corpo"
	doc := Segment(raw)

	if len(doc.Titles()) != 1 {
		t.Fatalf("duplicate heading should collapse, got %v", doc.Titles())
	}
	body, _ := doc.Body("RESUMO")
	if body != "segundo corpo" {
		t.Errorf("later heading should overwrite the body, got %q", body)
	}
}

func TestSegmentSectionsInDocumentOrder(t *testing.T) {
	raw := "ALFA\num\nBETA\ndois\nGAMA\ntrês"
	doc := Segment(raw)

	sections := doc.Sections()
	want := []string{"ALFA", "BETA", "GAMA"}
	if len(sections) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(sections))
	}
	for i, s := range sections {
		if s.Title != want[i] {
			t.Errorf("section %d: expected %q, got %q", i, want[i], s.Title)
		}
	}
}
