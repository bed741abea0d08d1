package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/llm"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/models"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
)

const confidenceThreshold = 0.5

// Envelope is the structured reply the completion endpoint is asked to
// produce. It is ephemeral: validated, dispatched, never persisted.
type Envelope struct {
	Module     string          `json:"module"`
	Action     string          `json:"action"`
	Data       json.RawMessage `json:"data"`
	Confidence float64         `json:"confidence"`
	Summary    string          `json:"summary"`
}

type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const voicePromptTemplate = `Eres el intérprete de comandos de LifeOS. Convierte la frase del usuario
en UNA acción estructurada. Responde SOLO con JSON, sin markdown ni texto extra.

Fecha de hoy: %s

Formato de salida:
{"module": "<módulo>", "action": "<acción>", "data": {...}, "confidence": <0.0-1.0>, "summary": "<resumen corto>"}

Módulos y campos de data:
- "nutrition" (ej: "comí dos huevos en el desayuno"): {"meal_type": "breakfast|lunch|dinner|snack", "food": "<nombre>", "calories": <número>, "protein": <g>, "carbs": <g>, "fat": <g>, "quantity_g": <gramos>}
- "fitness" (ej: "terminé mi rutina de pierna"): {"name": "<nombre del entrenamiento>", "notes": "<notas>"}
- "tasks" (ej: "recuérdame llamar al dentista mañana"): {"title": "<título>", "priority": "low|medium|high|urgent", "due_date": "YYYY-MM-DD"}
- "habits" (ej: "medité 10 minutos"): {"habit_name": "<nombre>", "value": <número>}
- "sleep" (ej: "dormí 7 horas y media"): {"hours": <número>, "quality": <1-5>}
- "notes" (ej: "apunta que la llave está en el cajón"): {"title": "<título>", "content": "<contenido>"}

Si no puedes clasificar la frase, usa confidence baja. Nunca inventes valores.`

type VoiceService struct {
	completions llm.CompletionClient
	nutrition   *NutritionService
	taskRepo    repository.TaskRepository
	habitRepo   repository.HabitRepository
	workoutRepo repository.WorkoutRepository
	sleepRepo   repository.SleepRepository
	noteRepo    repository.NoteRepository
}

func NewVoiceService(
	completions llm.CompletionClient,
	nutrition *NutritionService,
	taskRepo repository.TaskRepository,
	habitRepo repository.HabitRepository,
	workoutRepo repository.WorkoutRepository,
	sleepRepo repository.SleepRepository,
	noteRepo repository.NoteRepository,
) *VoiceService {
	return &VoiceService{
		completions: completions,
		nutrition:   nutrition,
		taskRepo:    taskRepo,
		habitRepo:   habitRepo,
		workoutRepo: workoutRepo,
		sleepRepo:   sleepRepo,
		noteRepo:    noteRepo,
	}
}

// Process sends the transcript to the completion endpoint and dispatches
// the parsed envelope. Every failure mode (the network call, JSON
// parsing, a handler error) collapses into a generic failure result; a
// handler may have partially applied writes before failing.
func (service *VoiceService) Process(ctx context.Context, userID string, transcript string) ActionResult {
	system := fmt.Sprintf(voicePromptTemplate, time.Now().Format("2006-01-02"))

	reply, err := service.completions.Complete(ctx, system, transcript)
	if err != nil {
		slog.Error("voice completion failed", "error", err)
		return ActionResult{Success: false, Message: "No pude procesar el comando. Inténtalo de nuevo."}
	}

	var envelope Envelope
	if err := json.Unmarshal([]byte(strings.TrimSpace(reply)), &envelope); err != nil {
		slog.Error("parsing voice envelope", "error", err, "raw", reply)
		return ActionResult{Success: false, Message: "No pude procesar el comando. Inténtalo de nuevo."}
	}

	return service.DispatchEnvelope(ctx, userID, envelope)
}

// DispatchEnvelope applies the confidence gate and routes to the module
// handler. Below the threshold nothing is written.
func (service *VoiceService) DispatchEnvelope(ctx context.Context, userID string, envelope Envelope) ActionResult {
	if envelope.Confidence < confidenceThreshold {
		return ActionResult{Success: false, Message: "No entendí bien el comando. ¿Puedes repetirlo de otra forma?"}
	}

	var (
		message string
		err     error
	)
	switch envelope.Module {
	case "nutrition":
		message, err = service.handleNutrition(ctx, userID, envelope.Data)
	case "fitness":
		message, err = service.handleFitness(ctx, userID, envelope.Data)
	case "tasks":
		message, err = service.handleTask(ctx, userID, envelope.Data)
	case "habits":
		message, err = service.handleHabit(ctx, userID, envelope.Data)
	case "sleep":
		message, err = service.handleSleep(ctx, userID, envelope.Data)
	case "notes":
		message, err = service.handleNote(ctx, userID, envelope.Data)
	default:
		return ActionResult{Success: false, Message: "No entendí el comando."}
	}
	if err != nil {
		slog.Error("voice handler failed", "module", envelope.Module, "error", err)
		return ActionResult{Success: false, Message: "No pude procesar el comando. Inténtalo de nuevo."}
	}

	if envelope.Summary != "" {
		message = envelope.Summary
	}
	return ActionResult{Success: true, Message: message}
}

func (service *VoiceService) handleNutrition(ctx context.Context, userID string, data json.RawMessage) (string, error) {
	var payload struct {
		MealType  string  `json:"meal_type"`
		Food      string  `json:"food"`
		Calories  float64 `json:"calories"`
		Protein   float64 `json:"protein"`
		Carbs     float64 `json:"carbs"`
		Fat       float64 `json:"fat"`
		QuantityG float64 `json:"quantity_g"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("parsing nutrition data: %w", err)
	}

	mealType := models.MealType(payload.MealType)
	if mealType == "" {
		mealType = models.MealTypeSnack
	}

	today := time.Now().Format("2006-01-02")
	_, err := service.nutrition.AddItem(ctx, userID, today, mealType, models.MealItem{
		Name:      payload.Food,
		QuantityG: payload.QuantityG,
		Calories:  payload.Calories,
		Protein:   payload.Protein,
		Carbs:     payload.Carbs,
		Fat:       payload.Fat,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Registrado: %s", payload.Food), nil
}

func (service *VoiceService) handleFitness(ctx context.Context, userID string, data json.RawMessage) (string, error) {
	var payload struct {
		Name  string `json:"name"`
		Notes string `json:"notes"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("parsing fitness data: %w", err)
	}

	now := time.Now()
	_, err := service.workoutRepo.Create(ctx, models.Workout{
		UserID:    userID,
		Name:      payload.Name,
		Notes:     payload.Notes,
		StartedAt: now,
		EndedAt:   &now,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Entrenamiento registrado: %s", payload.Name), nil
}

func (service *VoiceService) handleTask(ctx context.Context, userID string, data json.RawMessage) (string, error) {
	var payload struct {
		Title    string `json:"title"`
		Priority string `json:"priority"`
		DueDate  string `json:"due_date"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("parsing task data: %w", err)
	}

	task := models.Task{
		UserID:   userID,
		Title:    payload.Title,
		Priority: models.TaskPriority(payload.Priority),
	}
	if payload.DueDate != "" {
		task.DueDate = &payload.DueDate
	}

	if _, err := service.taskRepo.Create(ctx, task); err != nil {
		return "", err
	}
	return fmt.Sprintf("Tarea creada: %s", payload.Title), nil
}

func (service *VoiceService) handleHabit(ctx context.Context, userID string, data json.RawMessage) (string, error) {
	var payload struct {
		HabitName string  `json:"habit_name"`
		Value     float64 `json:"value"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("parsing habit data: %w", err)
	}

	habit, found, err := findHabitByName(ctx, service.habitRepo, userID, payload.HabitName)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("no active habit matches %q", payload.HabitName)
	}

	value := payload.Value
	if value == 0 {
		value = 1
	}
	today := time.Now().Format("2006-01-02")
	if _, err := service.habitRepo.AddToLog(ctx, habit.ID, today, value); err != nil {
		return "", err
	}
	return fmt.Sprintf("Hábito registrado: %s", habit.Name), nil
}

func (service *VoiceService) handleSleep(ctx context.Context, userID string, data json.RawMessage) (string, error) {
	var payload struct {
		Hours   float64 `json:"hours"`
		Quality int     `json:"quality"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("parsing sleep data: %w", err)
	}

	today := time.Now().Format("2006-01-02")
	_, err := service.sleepRepo.Upsert(ctx, models.SleepLog{
		UserID:  userID,
		Date:    today,
		Hours:   payload.Hours,
		Quality: payload.Quality,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Sueño registrado: %.1f horas", payload.Hours), nil
}

func (service *VoiceService) handleNote(ctx context.Context, userID string, data json.RawMessage) (string, error) {
	var payload struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("parsing note data: %w", err)
	}

	if _, err := service.noteRepo.Create(ctx, models.Note{
		UserID:  userID,
		Title:   payload.Title,
		Content: payload.Content,
	}); err != nil {
		return "", err
	}
	return "Nota guardada", nil
}

// findHabitByName returns the first active habit whose name contains the
// given text, case-insensitive. With overlapping habit names the first
// created one wins.
func findHabitByName(ctx context.Context, habitRepo repository.HabitRepository, userID string, name string) (models.Habit, bool, error) {
	habits, err := habitRepo.FindActive(ctx, userID)
	if err != nil {
		return models.Habit{}, false, err
	}

	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return models.Habit{}, false, nil
	}
	for _, habit := range habits {
		if strings.Contains(strings.ToLower(habit.Name), needle) {
			return habit, true, nil
		}
	}
	return models.Habit{}, false, nil
}
