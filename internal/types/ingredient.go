package types

// IngredientQuantity is either a single value or a range. For ranges
// ValueTo is non-nil and *ValueTo >= Value; Value is never negative.
type IngredientQuantity struct {
	Value   float64  `json:"value"`
	ValueTo *float64 `json:"value_to,omitempty"`
}

// IsRange reports whether the quantity spans two values.
func (q *IngredientQuantity) IsRange() bool {
	return q != nil && q.ValueTo != nil
}

// Max returns the larger bound of the quantity.
func (q *IngredientQuantity) Max() float64 {
	if q == nil {
		return 0
	}
	if q.ValueTo != nil && *q.ValueTo > q.Value {
		return *q.ValueTo
	}
	return q.Value
}

// ParsedIngredient is the structured form of one free-text ingredient line.
// Instances are never mutated after the parser creates them.
type ParsedIngredient struct {
	ID          string              `json:"id"`
	Original    string              `json:"original"`
	Quantity    *IngredientQuantity `json:"quantity,omitempty"`
	Unit        string              `json:"unit,omitempty"`
	Name        string              `json:"name"`
	Preparation string              `json:"preparation,omitempty"`
	Notes       string              `json:"notes,omitempty"`
	// Confidence is a heuristic parse-quality estimate in [0,1].
	Confidence float64 `json:"parse_confidence"`
	ParseError string  `json:"parse_error,omitempty"`
}
