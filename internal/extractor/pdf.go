package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFExtractor extracts text and page metadata from PDF bytes using
// pdfcpu. Extraction works on the decoded page content streams, pulling
// the literal strings written by the Tj/TJ text-show operators.
type PDFExtractor struct {
	conf *model.Configuration
}

// NewPDFExtractor creates a PDF extractor with relaxed validation, so
// slightly malformed files still yield text.
func NewPDFExtractor() *PDFExtractor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFExtractor{conf: conf}
}

func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (*Extraction, error) {
	if len(data) > MaxFileSize {
		return nil, ErrTooLarge
	}

	pdfCtx, err := api.ReadContext(bytes.NewReader(data), e.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if err := api.ValidateContext(pdfCtx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	var text strings.Builder
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
		if err != nil || r == nil {
			// Pages without extractable content are skipped, not fatal.
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			continue
		}
		pageText := decodeContentText(string(content))
		if pageText != "" {
			text.WriteString(pageText)
			text.WriteString("\n")
		}
	}

	meta := map[string]string{
		"format":      "pdf",
		"total_pages": strconv.Itoa(pdfCtx.PageCount),
	}

	return &Extraction{
		Text:     text.String(),
		Pages:    pdfCtx.PageCount,
		Metadata: meta,
	}, nil
}

var (
	// (string) Tj and [ (a) -120 (b) ] TJ show-text operators.
	tjRe  = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)\s*Tj`)
	tjaRe = regexp.MustCompile(`\[((?:\\.|[^\]])*)\]\s*TJ`)
	strRe = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)`)
	// Td/TD/T* start a new text line.
	newlineOpRe = regexp.MustCompile(`T\*|-?\d+(?:\.\d+)?\s+-?\d+(?:\.\d+)?\s+T[dD]\b`)
)

// decodeContentText pulls the shown strings out of a page content
// stream. Positioning operators become line breaks so the section
// heuristics downstream see one heading per line.
func decodeContentText(content string) string {
	var b strings.Builder

	segments := newlineOpRe.Split(content, -1)
	for _, seg := range segments {
		var parts []string
		for _, m := range tjRe.FindAllStringSubmatch(seg, -1) {
			parts = append(parts, unescapePDFString(m[1]))
		}
		for _, m := range tjaRe.FindAllStringSubmatch(seg, -1) {
			for _, sm := range strRe.FindAllStringSubmatch(m[1], -1) {
				parts = append(parts, unescapePDFString(sm[1]))
			}
		}
		line := strings.TrimSpace(strings.Join(parts, ""))
		if line != "" {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// unescapePDFString resolves the escape sequences of a PDF literal
// string: \( \) \\ \n \r \t and up-to-3-digit octal codes.
func unescapePDFString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '(', ')', '\\':
			b.WriteByte(s[i])
		case '0', '1', '2', '3', '4', '5', '6', '7':
			oct := string(s[i])
			for len(oct) < 3 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7' {
				i++
				oct += string(s[i])
			}
			if n, err := strconv.ParseUint(oct, 8, 16); err == nil && n < 256 {
				b.WriteByte(byte(n))
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
