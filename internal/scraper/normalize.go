package scraper

import (
	"html"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/pageza/ladle/backend/internal/parser"
	"github.com/pageza/ladle/backend/internal/types"
)

// stripper removes every tag from extracted text; pages embed markup in
// the strangest places.
var stripper = bluemonday.StrictPolicy()

// extracted is the raw output of one extraction strategy before
// normalization into a Recipe.
type extracted struct {
	title        string
	description  string
	author       string
	imageURL     string
	servingsText string
	ingredients  []string
	instructions []string
}

// cleanText strips markup and entities and collapses whitespace.
func cleanText(s string) string {
	s = stripper.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// cleanLines cleans every line, dropping empties and duplicates while
// preserving order.
func cleanLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = cleanText(line)
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}

// parseServings pulls the first integer out of a yield string ("Serves 4",
// "4-6 servings") along with a best-effort unit word.
func parseServings(text string) types.ServingInfo {
	info := types.ServingInfo{OriginalText: text, Unit: "servings"}

	start := -1
	for i, r := range text {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			info.Amount, _ = strconv.Atoi(text[start:i])
			return info
		}
	}
	if start >= 0 {
		info.Amount, _ = strconv.Atoi(text[start:])
	}
	return info
}

// buildRecipe normalizes a strategy result into the canonical Recipe.
func buildRecipe(ex *extracted, pageURL, domain, method string, p *parser.Parser) *types.Recipe {
	instructions := make([]types.Instruction, 0, len(ex.instructions))
	for i, text := range cleanLines(ex.instructions) {
		instructions = append(instructions, types.Instruction{Step: i + 1, Text: text})
	}

	return &types.Recipe{
		ID:           uuid.NewString(),
		Title:        cleanText(ex.title),
		Description:  cleanText(ex.description),
		Author:       cleanText(ex.author),
		ImageURL:     strings.TrimSpace(ex.imageURL),
		Servings:     parseServings(cleanText(ex.servingsText)),
		Ingredients:  p.ParseIngredients(cleanLines(ex.ingredients)),
		Instructions: instructions,
		Source: types.RecipeSource{
			URL:          pageURL,
			Domain:       domain,
			FetchedAt:    time.Now(),
			ScrapeMethod: method,
		},
	}
}
