package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/albqueque12/FitIA/internal/api"
	"github.com/albqueque12/FitIA/internal/models"
	"github.com/albqueque12/FitIA/internal/services"
	"github.com/albqueque12/FitIA/internal/wizard"
)

type sessionStore interface {
	Load() (*models.Session, error)
	Save(*models.Session) error
	Clear() error
	Theme() string
	SetTheme(theme string) error
}

type trainingService interface {
	Profile(ctx context.Context, userID int64) (models.User, error)
	Progress(ctx context.Context, userID int64) (models.Progress, error)
	Plans(ctx context.Context, userID int64) ([]models.TrainingPlan, error)
	Feedbacks(ctx context.Context, userID int64) ([]models.Feedback, error)
	Exams(ctx context.Context, userID int64) ([]models.Exam, error)
	GenerateWeek(ctx context.Context, userID int64, week int) (*models.TrainingPlan, error)
	CompleteWorkout(ctx context.Context, userID int64, input services.CompleteWorkoutInput) error
	SubmitFeedback(ctx context.Context, user models.User, input services.FeedbackInput) (float64, error)
	SubmitExam(ctx context.Context, userID int64, input services.ExamInput) (*models.Exam, error)
}

type userCreator interface {
	CreateUser(ctx context.Context, req api.CreateUserRequest) (*models.Session, error)
}

type Handler struct {
	store   sessionStore
	service trainingService
	creator userCreator
	wizard  *wizard.Controller
}

func NewHandler(store sessionStore, service trainingService, creator userCreator) *Handler {
	return &Handler{
		store:   store,
		service: service,
		creator: creator,
		wizard:  wizard.NewController(),
	}
}

// session loads the persisted session; nil means the registration flow
// must be shown instead of a half-initialized dashboard.
func (h *Handler) session() *models.Session {
	sess, err := h.store.Load()
	if err != nil {
		// A failing local store behaves like an absent session.
		return nil
	}
	return sess
}

// render wraps c.Render with the variables every page shares. Banner
// messages travel as query parameters so a plain navigation dismisses them.
func (h *Handler) render(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	bind["Theme"] = h.store.Theme()
	if _, ok := bind["Erro"]; !ok {
		bind["Erro"] = c.Query("erro")
	}
	if _, ok := bind["Sucesso"]; !ok {
		bind["Sucesso"] = c.Query("sucesso")
	}
	return c.Render(name, bind)
}

// optionalFloat parses a numeric form field where blank means "not
// measured": the pointer stays nil instead of collapsing to zero.
func optionalFloat(raw string) (*float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, true
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, false
	}
	return &value, true
}

func optionalText(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
