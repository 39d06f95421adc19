package scraper

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// schemaStrategy extracts recipes from schema.org structured data embedded
// in application/ld+json script blocks. It is tried first because sites
// that publish it give exact, machine-readable fields.
type schemaStrategy struct{}

func (schemaStrategy) name() string { return "schema-org" }

func (schemaStrategy) extract(doc *goquery.Document) (*extracted, bool) {
	var recipe map[string]any

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content := strings.TrimSpace(s.Text())
		if content == "" {
			return true
		}
		var data any
		if err := json.Unmarshal([]byte(content), &data); err != nil {
			return true
		}
		if found := findRecipeNode(data); found != nil {
			recipe = found
			return false
		}
		return true
	})

	if recipe == nil {
		return nil, false
	}

	ex := &extracted{
		title:        stringField(recipe, "name"),
		description:  stringField(recipe, "description"),
		author:       authorField(recipe["author"]),
		imageURL:     imageField(recipe["image"]),
		servingsText: yieldField(recipe["recipeYield"]),
		ingredients:  stringList(recipe["recipeIngredient"]),
		instructions: instructionList(recipe["recipeInstructions"]),
	}
	if len(ex.ingredients) == 0 {
		ex.ingredients = stringList(recipe["ingredients"])
	}

	// The strategy only wins with a title and at least one ingredient.
	if ex.title == "" || len(ex.ingredients) == 0 {
		return nil, false
	}
	return ex, true
}

// findRecipeNode walks arbitrarily nested JSON-LD (arrays, @graph) looking
// for an object typed as a schema.org Recipe.
func findRecipeNode(data any) map[string]any {
	switch node := data.(type) {
	case []any:
		for _, item := range node {
			if found := findRecipeNode(item); found != nil {
				return found
			}
		}
	case map[string]any:
		if isRecipeType(node["@type"]) {
			return node
		}
		if graph, ok := node["@graph"]; ok {
			if found := findRecipeNode(graph); found != nil {
				return found
			}
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return strings.EqualFold(v, "Recipe")
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.EqualFold(s, "Recipe") {
				return true
			}
		}
	}
	return false
}

func stringField(node map[string]any, key string) string {
	if s, ok := node[key].(string); ok {
		return s
	}
	return ""
}

// authorField handles the common author encodings: a plain string, a
// Person object, or a list of either.
func authorField(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case map[string]any:
		return stringField(a, "name")
	case []any:
		for _, item := range a {
			if s := authorField(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// imageField handles image as URL string, ImageObject, or a list.
func imageField(v any) string {
	switch img := v.(type) {
	case string:
		return img
	case map[string]any:
		return stringField(img, "url")
	case []any:
		for _, item := range img {
			if s := imageField(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// yieldField handles recipeYield as string, number, or list.
func yieldField(v any) string {
	switch y := v.(type) {
	case string:
		return y
	case float64:
		return strconv.FormatFloat(y, 'f', -1, 64)
	case []any:
		for _, item := range y {
			if s := yieldField(item); s != "" {
				return s
			}
		}
	}
	return ""
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if s, isStr := v.(string); isStr && s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// instructionList handles recipeInstructions as plain strings, HowToStep
// objects, and HowToSection groupings.
func instructionList(v any) []string {
	var out []string

	var walk func(any)
	walk = func(node any) {
		switch n := node.(type) {
		case string:
			if s := strings.TrimSpace(n); s != "" {
				out = append(out, s)
			}
		case []any:
			for _, item := range n {
				walk(item)
			}
		case map[string]any:
			if steps, ok := n["itemListElement"]; ok {
				walk(steps)
				return
			}
			if text := stringField(n, "text"); text != "" {
				out = append(out, text)
				return
			}
			if name := stringField(n, "name"); name != "" {
				out = append(out, name)
			}
		}
	}
	walk(v)

	return out
}
