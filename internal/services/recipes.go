package services

import (
	"context"
	"strings"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
)

// RecipeTemplate is a static suggestion, not a generative call. The
// catalog lives in memory and suggestions are a naive substring match of
// required ingredients against pantry item names.
type RecipeTemplate struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Steps       string   `json:"steps"`
}

type RecipeSuggestion struct {
	Recipe  RecipeTemplate `json:"recipe"`
	Matched []string       `json:"matched"`
	Missing []string       `json:"missing"`
}

var recipeCatalog = []RecipeTemplate{
	{
		Name:        "Tortilla de huevo con espinacas",
		Ingredients: []string{"huevo", "espinaca", "aceite"},
		Steps:       "Bate los huevos, saltea las espinacas y cuaja a fuego medio.",
	},
	{
		Name:        "Avena con plátano",
		Ingredients: []string{"avena", "plátano", "leche"},
		Steps:       "Cocina la avena en la leche y añade el plátano en rodajas.",
	},
	{
		Name:        "Pollo a la plancha con arroz",
		Ingredients: []string{"pollo", "arroz", "limón"},
		Steps:       "Marina el pollo con limón, hazlo a la plancha y sirve con arroz.",
	},
	{
		Name:        "Ensalada de atún",
		Ingredients: []string{"atún", "lechuga", "tomate", "aceite"},
		Steps:       "Mezcla todo y aliña con aceite.",
	},
	{
		Name:        "Lentejas guisadas",
		Ingredients: []string{"lenteja", "zanahoria", "cebolla"},
		Steps:       "Sofríe la cebolla y la zanahoria, añade las lentejas y cubre con agua.",
	},
	{
		Name:        "Yogur con frutos secos",
		Ingredients: []string{"yogur", "nuez", "miel"},
		Steps:       "Sirve el yogur y corona con nueces y un hilo de miel.",
	},
}

type RecipeService struct {
	pantryRepo repository.PantryRepository
}

func NewRecipeService(pantryRepo repository.PantryRepository) *RecipeService {
	return &RecipeService{pantryRepo: pantryRepo}
}

func (service *RecipeService) Suggestions(ctx context.Context, userID string) ([]RecipeSuggestion, error) {
	items, err := service.pantryRepo.FindAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	pantry := make([]string, 0, len(items))
	for _, item := range items {
		pantry = append(pantry, strings.ToLower(item.Name))
	}

	var suggestions []RecipeSuggestion
	for _, recipe := range recipeCatalog {
		suggestion := RecipeSuggestion{Recipe: recipe}
		for _, ingredient := range recipe.Ingredients {
			if pantryContains(pantry, ingredient) {
				suggestion.Matched = append(suggestion.Matched, ingredient)
			} else {
				suggestion.Missing = append(suggestion.Missing, ingredient)
			}
		}
		if len(suggestion.Matched) > 0 {
			suggestions = append(suggestions, suggestion)
		}
	}
	return suggestions, nil
}

func pantryContains(pantry []string, ingredient string) bool {
	needle := strings.ToLower(ingredient)
	for _, name := range pantry {
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return true
		}
	}
	return false
}
