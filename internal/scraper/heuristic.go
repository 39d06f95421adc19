package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// heuristicStrategy extracts recipes from pages without structured data by
// trying known selector patterns first and falling back to walking the DOM
// from an "Ingredients"/"Instructions" heading.
type heuristicStrategy struct{}

func (heuristicStrategy) name() string { return "heuristic" }

// Selector groups in priority order. The first pattern yielding enough
// lines wins.
var ingredientSelectors = []string{
	`[itemprop="recipeIngredient"]`,
	`[itemprop="ingredients"]`,
	".recipe-ingredients li",
	".recipe-ingredient",
	"ul.ingredients li",
	".ingredients li",
	".ingredient-list li",
	`[class*="ingredient"] li`,
	`li[class*="ingredient"]`,
}

var instructionSelectors = []string{
	`[itemprop="recipeInstructions"] li`,
	`[itemprop="recipeInstructions"] p`,
	".recipe-instructions li",
	".recipe-directions li",
	"ol.instructions li",
	".instructions li",
	".directions li",
	".method li",
	`[class*="instruction"] li`,
	`[class*="direction"] li`,
}

var titleSelectors = []string{
	"h1.recipe-title",
	".recipe-title",
	`[itemprop="name"]`,
	"h1",
	"title",
}

var servingsSelectors = []string{
	`[itemprop="recipeYield"]`,
	".recipe-yield",
	".servings",
	`[class*="servings"]`,
	`[class*="yield"]`,
}

// ingredientLabels and instructionLabels match section headings for the
// fallback walk; stopLabels end a section.
var (
	ingredientLabels  = []string{"ingredients", "ingredient list", "what you need", "what you'll need"}
	instructionLabels = []string{"instructions", "directions", "method", "preparation", "steps"}
	stopLabels        = []string{"notes", "tips", "nutrition", "equipment"}
)

// maxHeadingHops bounds the sibling walk so flat adversarial DOMs stay
// cheap.
const maxHeadingHops = 40

func (heuristicStrategy) extract(doc *goquery.Document) (*extracted, bool) {
	ex := &extracted{
		ingredients:  selectLines(doc, ingredientSelectors, 2),
		instructions: selectLines(doc, instructionSelectors, 1),
	}

	if len(ex.ingredients) == 0 {
		ex.ingredients = headingWalk(doc, ingredientLabels)
	}
	if len(ex.instructions) == 0 {
		ex.instructions = headingWalk(doc, instructionLabels)
	}

	if len(ex.ingredients) == 0 {
		return nil, false
	}

	for _, sel := range titleSelectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			ex.title = text
			break
		}
	}
	for _, sel := range servingsSelectors {
		node := doc.Find(sel).First()
		if text := strings.TrimSpace(node.AttrOr("content", node.Text())); text != "" {
			ex.servingsText = text
			break
		}
	}

	ex.description = metaContent(doc, "og:description", "description")
	ex.imageURL = metaContent(doc, "og:image", "")

	return ex, true
}

// selectLines tries each selector group and returns the lines of the first
// one that yields at least minLines non-empty entries.
func selectLines(doc *goquery.Document, selectors []string, minLines int) []string {
	for _, sel := range selectors {
		var lines []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				lines = append(lines, text)
			}
		})
		if len(lines) >= minLines {
			return lines
		}
	}
	return nil
}

// headingWalk finds a heading or paragraph matching one of labels inside
// the main content region, then collects list items and paragraph lines
// from following siblings until a stop heading or the hop bound.
func headingWalk(doc *goquery.Document, labels []string) []string {
	root := mainContent(doc)

	var heading *goquery.Selection
	root.Find("h1, h2, h3, h4, h5, h6, p, strong").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if matchesLabel(s.Text(), labels) {
			heading = s
			return false
		}
		return true
	})
	if heading == nil {
		return nil
	}
	// A matching <strong> or <p> may sit inside a wrapper; walk from the
	// outermost element that is still a sibling-level block.
	if heading.Is("strong") {
		heading = heading.Parent()
	}

	var lines []string
	hops := 0
	for sibling := heading.Next(); sibling.Length() > 0 && hops < maxHeadingHops; sibling = sibling.Next() {
		hops++

		if isStopNode(sibling) {
			break
		}

		switch {
		case sibling.Is("ul, ol"):
			sibling.Find("li").Each(func(_ int, li *goquery.Selection) {
				if text := strings.TrimSpace(li.Text()); text != "" {
					lines = append(lines, text)
				}
			})
		case sibling.Is("li, p"):
			if text := strings.TrimSpace(sibling.Text()); text != "" {
				lines = append(lines, text)
			}
		default:
			// Containers one level down are common ("<div><ul>...").
			sibling.Find("li").Each(func(_ int, li *goquery.Selection) {
				if text := strings.TrimSpace(li.Text()); text != "" {
					lines = append(lines, text)
				}
			})
		}
	}
	return lines
}

func mainContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range []string{"main", "article", `[role="main"]`} {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			return node
		}
	}
	return doc.Find("body")
}

// matchesLabel accepts short texts like "Ingredients" or "Ingredients:".
func matchesLabel(text string, labels []string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.TrimSuffix(text, ":")
	if len(text) > 40 {
		return false
	}
	for _, label := range labels {
		if text == label {
			return true
		}
	}
	return false
}

// isStopNode reports whether sibling ends the section: a Notes/Tips/
// Nutrition/Equipment heading, or any next major heading.
func isStopNode(s *goquery.Selection) bool {
	if !s.Is("h1, h2, h3, h4, h5, h6") {
		return false
	}
	text := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s.Text()), ":"))
	for _, label := range stopLabels {
		if strings.HasPrefix(text, label) {
			return true
		}
	}
	return s.Is("h1, h2, h3")
}

func metaContent(doc *goquery.Document, property, name string) string {
	if property != "" {
		if v, ok := doc.Find(`meta[property="` + property + `"]`).Attr("content"); ok {
			return v
		}
	}
	if name != "" {
		if v, ok := doc.Find(`meta[name="` + name + `"]`).Attr("content"); ok {
			return v
		}
	}
	return ""
}
