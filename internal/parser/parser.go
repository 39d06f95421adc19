// Package parser converts free-text ingredient lines into structured form.
// Parsing is pure and never returns an error: anything it cannot make sense
// of degrades to a zero-confidence passthrough of the original text.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/ladle/backend/internal/types"
)

// Parser tokenizes ingredient lines against fixed vocabularies. It holds no
// mutable state and is safe for concurrent use.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// ParseIngredients parses each line in order.
func (p *Parser) ParseIngredients(lines []string) []types.ParsedIngredient {
	out := make([]types.ParsedIngredient, 0, len(lines))
	for _, line := range lines {
		out = append(out, p.ParseIngredient(line))
	}
	return out
}

// ParseIngredient parses a single ingredient line. It never panics; an
// internal failure produces the unparsed fallback with an error note.
func (p *Parser) ParseIngredient(text string) (result types.ParsedIngredient) {
	defer func() {
		if r := recover(); r != nil {
			result = unparsed(text, fmt.Sprintf("parse failure: %v", r))
		}
	}()

	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 2 {
		return unparsed(text, "")
	}

	rest, notes := extractNotes(trimmed)
	quantity, rest := extractQuantity(rest)
	unit, rest := extractUnit(rest)
	preparation, rest := extractPreparation(rest)

	name := strings.TrimSpace(rest)
	name = strings.TrimPrefix(name, "of ")
	name = collapseSpaces(name)

	confidence := 0.5
	if quantity != nil {
		confidence += 0.25
	}
	if unit != "" {
		confidence += 0.15
	}
	if len(name) > 2 {
		confidence += 0.10
	}
	if confidence > 1.0 {
		confidence = 1.0
	}

	return types.ParsedIngredient{
		ID:          uuid.NewString(),
		Original:    text,
		Quantity:    quantity,
		Unit:        unit,
		Name:        name,
		Preparation: preparation,
		Notes:       notes,
		Confidence:  confidence,
	}
}

func unparsed(text, errMsg string) types.ParsedIngredient {
	return types.ParsedIngredient{
		ID:         uuid.NewString(),
		Original:   text,
		Name:       strings.TrimSpace(text),
		Confidence: 0,
		ParseError: errMsg,
	}
}

// extractNotes pulls parenthesized segments and trailing note-phrase
// clauses out of text, returning the remainder and the joined notes.
func extractNotes(text string) (string, string) {
	var notes []string

	for {
		open := strings.Index(text, "(")
		if open < 0 {
			break
		}
		end := strings.Index(text[open:], ")")
		if end < 0 {
			break
		}
		note := strings.TrimSpace(text[open+1 : open+end])
		if note != "" {
			notes = append(notes, note)
		}
		text = text[:open] + text[open+end+1:]
	}

	// A trailing comma clause built around a note phrase ("..., divided",
	// "..., plus more for dusting") is a note, not part of the name.
	for {
		idx := strings.LastIndex(text, ",")
		if idx < 0 {
			break
		}
		clause := strings.TrimSpace(text[idx+1:])
		if !containsNotePhrase(clause) {
			break
		}
		notes = append(notes, clause)
		text = text[:idx]
	}

	return strings.TrimSpace(text), strings.Join(notes, "; ")
}

func containsNotePhrase(clause string) bool {
	lower := strings.ToLower(clause)
	for _, phrase := range notePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// extractQuantity reads a leading quantity token: plain numbers, decimals,
// text and unicode fractions, mixed numbers ("2 1/4"), and ranges joined
// by hyphen, en-dash, or "to".
func extractQuantity(text string) (*types.IngredientQuantity, string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, text
	}

	// Inline range in a single token, e.g. "1-2" or "1–2".
	if lo, hi, ok := splitInlineRange(fields[0]); ok {
		return rangeQuantity(lo, hi), strings.Join(fields[1:], " ")
	}

	value, ok := parseNumberToken(fields[0])
	if !ok {
		return nil, text
	}
	consumed := 1

	// Mixed fraction continuation: "2 1/4 cups".
	if len(fields) > consumed {
		if frac, ok := parseFractionToken(fields[consumed]); ok {
			value += frac
			consumed++
		}
	}

	// Range with a separator token: "1 - 2", "1 to 2".
	if len(fields) > consumed+1 && isRangeSeparator(fields[consumed]) {
		if hi, ok := parseNumberToken(fields[consumed+1]); ok {
			consumed += 2
			if len(fields) > consumed {
				if frac, ok := parseFractionToken(fields[consumed]); ok {
					hi += frac
					consumed++
				}
			}
			return rangeQuantity(value, hi), strings.Join(fields[consumed:], " ")
		}
	}

	return &types.IngredientQuantity{Value: value}, strings.Join(fields[consumed:], " ")
}

func rangeQuantity(lo, hi float64) *types.IngredientQuantity {
	if hi < lo {
		lo, hi = hi, lo
	}
	return &types.IngredientQuantity{Value: lo, ValueTo: &hi}
}

func isRangeSeparator(tok string) bool {
	return tok == "-" || tok == "–" || strings.EqualFold(tok, "to")
}

func splitInlineRange(tok string) (float64, float64, bool) {
	for _, sep := range []string{"-", "–"} {
		parts := strings.SplitN(tok, sep, 2)
		if len(parts) != 2 {
			continue
		}
		lo, okLo := parseNumberToken(parts[0])
		hi, okHi := parseNumberToken(parts[1])
		if okLo && okHi {
			return lo, hi, true
		}
	}
	return 0, 0, false
}

// parseNumberToken resolves one numeric token: "2", "1.5", "1/2", "½",
// or a digit run immediately followed by a fraction glyph ("2½").
func parseNumberToken(tok string) (float64, bool) {
	if tok == "" {
		return 0, false
	}

	runes := []rune(tok)
	last := runes[len(runes)-1]
	if frac, ok := unicodeFractions[last]; ok {
		if len(runes) == 1 {
			return frac, true
		}
		whole, err := strconv.ParseFloat(string(runes[:len(runes)-1]), 64)
		if err != nil || whole < 0 {
			return 0, false
		}
		return whole + frac, true
	}

	if frac, ok := parseFractionToken(tok); ok {
		return frac, true
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// parseFractionToken resolves pure fractions only: "N/M" or a lone glyph.
func parseFractionToken(tok string) (float64, bool) {
	runes := []rune(tok)
	if len(runes) == 1 {
		if frac, ok := unicodeFractions[runes[0]]; ok {
			return frac, true
		}
	}

	parts := strings.SplitN(tok, "/", 2)
	if len(parts) != 2 {
		return 0, false
	}
	num, errN := strconv.Atoi(parts[0])
	den, errD := strconv.Atoi(parts[1])
	if errN != nil || errD != nil || num < 0 || den <= 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}

// extractUnit consumes a leading unit token, preferring two-word units
// ("fl oz") over single words.
func extractUnit(text string) (string, string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", text
	}

	if len(fields) >= 2 {
		twoWord := strings.ToLower(normalizeUnitToken(fields[0]) + " " + normalizeUnitToken(fields[1]))
		if unit, ok := twoWordUnits[twoWord]; ok {
			return unit, strings.Join(fields[2:], " ")
		}
	}

	single := strings.ToLower(normalizeUnitToken(fields[0]))
	if unit, ok := unitAliases[single]; ok {
		return unit, strings.Join(fields[1:], " ")
	}

	return "", text
}

func normalizeUnitToken(tok string) string {
	return strings.TrimSuffix(tok, ".")
}

// extractPreparation finds the preparation: a trailing comma clause
// containing a vocabulary word, or a leading vocabulary word ("ground
// beef" -> "ground" + "beef").
func extractPreparation(text string) (string, string) {
	if idx := strings.LastIndex(text, ","); idx >= 0 {
		clause := strings.TrimSpace(text[idx+1:])
		if containsPrepWord(clause) {
			return clause, strings.TrimSpace(text[:idx])
		}
	}

	fields := strings.Fields(text)
	if len(fields) > 1 && prepWords[strings.ToLower(fields[0])] {
		return strings.ToLower(fields[0]), strings.Join(fields[1:], " ")
	}

	return "", text
}

func containsPrepWord(clause string) bool {
	for _, word := range strings.Fields(strings.ToLower(clause)) {
		if prepWords[strings.Trim(word, ",.")] {
			return true
		}
	}
	return false
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
