package machine

import "strings"

// Recipe is the amount of each resource a drink consumes.
type Recipe struct {
	WaterML int `json:"water_ml"`
	CoffeeG int `json:"coffee_g"`
}

// recipes is the fixed drink table. Adding a drink here is all the
// machine needs; the API layer registers a route per name.
var recipes = map[string]Recipe{
	"espresso":        {WaterML: 24, CoffeeG: 8},
	"double_espresso": {WaterML: 48, CoffeeG: 16},
	"americano":       {WaterML: 148, CoffeeG: 16},
	"ristretto":       {WaterML: 16, CoffeeG: 8},
}

// Recipes returns a copy of the recipe table.
func Recipes() map[string]Recipe {
	out := make(map[string]Recipe, len(recipes))
	for k, v := range recipes {
		out[k] = v
	}
	return out
}

// displayName turns a recipe key into its human form:
// "double_espresso" -> "Double Espresso".
func displayName(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
