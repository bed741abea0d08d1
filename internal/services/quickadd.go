package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
)

var (
	taskPattern  = regexp.MustCompile(`(?i)^tarea:?\s*(.+)$`)
	habitPattern = regexp.MustCompile(`(?i)^(.+?)\s*\+(\d+)$`)
	mealPattern  = regexp.MustCompile(`(?i)^(desayuno|almuerzo|cena|snack):?\s*(.+)$`)
)

var mealTypeByWord = map[string]models.MealType{
	"desayuno": models.MealTypeBreakfast,
	"almuerzo": models.MealTypeLunch,
	"cena":     models.MealTypeDinner,
	"snack":    models.MealTypeSnack,
}

type QuickAddService struct {
	taskRepo  repository.TaskRepository
	habitRepo repository.HabitRepository
	nutrition *NutritionService
	voice     *VoiceService
}

func NewQuickAddService(
	taskRepo repository.TaskRepository,
	habitRepo repository.HabitRepository,
	nutrition *NutritionService,
	voice *VoiceService,
) *QuickAddService {
	return &QuickAddService{
		taskRepo:  taskRepo,
		habitRepo: habitRepo,
		nutrition: nutrition,
		voice:     voice,
	}
}

// Dispatch routes one line of freeform text. Rules run in order on the
// trimmed input and the first match wins; a habit shorthand that matches
// no active habit falls through silently. Anything unmatched goes to the
// voice interpreter. Repository errors from a matched rule propagate to
// the caller as hard failures.
func (service *QuickAddService) Dispatch(ctx context.Context, userID string, text string) (ActionResult, error) {
	input := strings.TrimSpace(text)
	if input == "" {
		return ActionResult{Success: false, Message: "Nada que agregar"}, nil
	}

	if match := taskPattern.FindStringSubmatch(input); match != nil {
		title := strings.TrimSpace(match[1])
		if _, err := service.taskRepo.Create(ctx, models.Task{
			UserID:   userID,
			Title:    title,
			Priority: models.PriorityMedium,
		}); err != nil {
			return ActionResult{}, err
		}
		return ActionResult{Success: true, Message: fmt.Sprintf("Tarea creada: %s", title)}, nil
	}

	if match := habitPattern.FindStringSubmatch(input); match != nil {
		habit, found, err := findHabitByName(ctx, service.habitRepo, userID, match[1])
		if err != nil {
			return ActionResult{}, err
		}
		if found {
			value, _ := strconv.Atoi(match[2])
			today := time.Now().Format("2006-01-02")
			log, err := service.habitRepo.AddToLog(ctx, habit.ID, today, float64(value))
			if err != nil {
				return ActionResult{}, err
			}
			return ActionResult{
				Success: true,
				Message: fmt.Sprintf("%s: %.0f hoy", habit.Name, log.Value),
			}, nil
		}
		// No habit matched: fall through to the remaining rules.
	}

	if match := mealPattern.FindStringSubmatch(input); match != nil {
		mealType := mealTypeByWord[strings.ToLower(match[1])]
		name := strings.TrimSpace(match[2])
		today := time.Now().Format("2006-01-02")

		// Macros are not looked up here; the item lands with zeros and
		// the default 100 g quantity.
		if _, err := service.nutrition.AddItem(ctx, userID, today, mealType, models.MealItem{
			Name: name,
		}); err != nil {
			return ActionResult{}, err
		}
		return ActionResult{Success: true, Message: fmt.Sprintf("Agregado a %s: %s", strings.ToLower(match[1]), name)}, nil
	}

	return service.voice.Process(ctx, userID, text), nil
}
