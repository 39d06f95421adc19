package parser

// unicodeFractions maps single-glyph vulgar fractions to their values.
var unicodeFractions = map[rune]float64{
	'¼': 0.25,
	'½': 0.5,
	'¾': 0.75,
	'⅐': 1.0 / 7.0,
	'⅑': 1.0 / 9.0,
	'⅒': 0.1,
	'⅓': 1.0 / 3.0,
	'⅔': 2.0 / 3.0,
	'⅕': 0.2,
	'⅖': 0.4,
	'⅗': 0.6,
	'⅘': 0.8,
	'⅙': 1.0 / 6.0,
	'⅚': 5.0 / 6.0,
	'⅛': 0.125,
	'⅜': 0.375,
	'⅝': 0.625,
	'⅞': 0.875,
}

// unitAliases maps every accepted spelling to its canonical unit name.
// Two-word aliases live in twoWordUnits and are checked first.
var unitAliases = map[string]string{
	"cup":         "cup",
	"cups":        "cup",
	"c":           "cup",
	"tablespoon":  "tablespoon",
	"tablespoons": "tablespoon",
	"tbsp":        "tablespoon",
	"tbs":         "tablespoon",
	"teaspoon":    "teaspoon",
	"teaspoons":   "teaspoon",
	"tsp":         "teaspoon",
	"ounce":       "ounce",
	"ounces":      "ounce",
	"oz":          "ounce",
	"pound":       "pound",
	"pounds":      "pound",
	"lb":          "pound",
	"lbs":         "pound",
	"gram":        "gram",
	"grams":       "gram",
	"g":           "gram",
	"kilogram":    "kilogram",
	"kilograms":   "kilogram",
	"kg":          "kilogram",
	"milliliter":  "milliliter",
	"milliliters": "milliliter",
	"ml":          "milliliter",
	"liter":       "liter",
	"liters":      "liter",
	"litre":       "liter",
	"litres":      "liter",
	"l":           "liter",
	"pint":        "pint",
	"pints":       "pint",
	"pt":          "pint",
	"quart":       "quart",
	"quarts":      "quart",
	"qt":          "quart",
	"gallon":      "gallon",
	"gallons":     "gallon",
	"gal":         "gallon",
	"pinch":       "pinch",
	"pinches":     "pinch",
	"dash":        "dash",
	"dashes":      "dash",
	"clove":       "clove",
	"cloves":      "clove",
	"slice":       "slice",
	"slices":      "slice",
	"piece":       "piece",
	"pieces":      "piece",
	"can":         "can",
	"cans":        "can",
	"package":     "package",
	"packages":    "package",
	"pkg":         "package",
	"stick":       "stick",
	"sticks":      "stick",
	"bunch":       "bunch",
	"bunches":     "bunch",
	"head":        "head",
	"heads":       "head",
	"sprig":       "sprig",
	"sprigs":      "sprig",
	"stalk":       "stalk",
	"stalks":      "stalk",
}

// twoWordUnits are checked before single-word aliases so "fl oz" does not
// tokenize as an unknown word followed by "ounce".
var twoWordUnits = map[string]string{
	"fl oz":        "fluid ounce",
	"fl. oz":       "fluid ounce",
	"fluid ounce":  "fluid ounce",
	"fluid ounces": "fluid ounce",
}

// prepWords is the fixed preparation vocabulary. A trailing comma clause
// containing one of these, or a leading occurrence, becomes the
// preparation field.
var prepWords = map[string]bool{
	"chopped":   true,
	"diced":     true,
	"minced":    true,
	"sliced":    true,
	"crushed":   true,
	"grated":    true,
	"shredded":  true,
	"melted":    true,
	"softened":  true,
	"beaten":    true,
	"peeled":    true,
	"cored":     true,
	"seeded":    true,
	"trimmed":   true,
	"halved":    true,
	"quartered": true,
	"cubed":     true,
	"julienned": true,
	"ground":    true,
	"toasted":   true,
	"drained":   true,
	"rinsed":    true,
	"mashed":    true,
	"whisked":   true,
	"sifted":    true,
	"zested":    true,
	"juiced":    true,
}

// notePhrases are trailing clauses that carry usage hints rather than
// identity; they are moved into the notes field.
var notePhrases = []string{
	"optional",
	"divided",
	"to taste",
	"as needed",
	"for garnish",
	"for serving",
	"plus more",
	"approximately",
	"about",
}
