package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/albqueque12/FitIA/internal/api"
	"github.com/albqueque12/FitIA/internal/fetcher"
	"github.com/albqueque12/FitIA/internal/models"
	"github.com/albqueque12/FitIA/internal/refresh"
)

type trainingAPI interface {
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	GetProgress(ctx context.Context, userID int64) (*models.Progress, error)
	GenerateWeekPlan(ctx context.Context, userID int64, week int) (*models.TrainingPlan, error)
	ListTrainingPlans(ctx context.Context, userID int64) ([]models.TrainingPlan, error)
	CompleteWorkout(ctx context.Context, workoutID int64, req api.CompleteWorkoutRequest) error
	SubmitFeedback(ctx context.Context, userID int64, req api.FeedbackRequest) (float64, error)
	ListFeedback(ctx context.Context, userID int64) ([]models.Feedback, error)
	SubmitExam(ctx context.Context, userID int64, req api.ExamRequest) (*models.Exam, error)
	ListExams(ctx context.Context, userID int64) ([]models.Exam, error)
}

// TrainingService is the single seam between the views and the API: reads
// go through per-entity fetchers, writes go straight to the API and, on
// success, signal the refresh bus so every cached view refetches.
type TrainingService struct {
	api trainingAPI
	bus *refresh.Bus

	profile   *fetcher.Fetcher[models.User]
	progress  *fetcher.Fetcher[models.Progress]
	plans     *fetcher.Fetcher[[]models.TrainingPlan]
	feedbacks *fetcher.Fetcher[[]models.Feedback]
	exams     *fetcher.Fetcher[[]models.Exam]
}

func NewTrainingService(client trainingAPI, bus *refresh.Bus) *TrainingService {
	s := &TrainingService{api: client, bus: bus}
	s.profile = fetcher.New(bus, func(ctx context.Context, key string) (models.User, error) {
		user, err := client.GetUser(ctx, parseKey(key))
		if err != nil {
			return models.User{}, err
		}
		return *user, nil
	})
	s.progress = fetcher.New(bus, func(ctx context.Context, key string) (models.Progress, error) {
		progress, err := client.GetProgress(ctx, parseKey(key))
		if err != nil {
			return models.Progress{}, err
		}
		return *progress, nil
	})
	s.plans = fetcher.New(bus, func(ctx context.Context, key string) ([]models.TrainingPlan, error) {
		return client.ListTrainingPlans(ctx, parseKey(key))
	})
	s.feedbacks = fetcher.New(bus, func(ctx context.Context, key string) ([]models.Feedback, error) {
		return client.ListFeedback(ctx, parseKey(key))
	})
	s.exams = fetcher.New(bus, func(ctx context.Context, key string) ([]models.Exam, error) {
		return client.ListExams(ctx, parseKey(key))
	})
	return s
}

func (s *TrainingService) Profile(ctx context.Context, userID int64) (models.User, error) {
	return s.profile.Get(ctx, userKey(userID))
}

func (s *TrainingService) Progress(ctx context.Context, userID int64) (models.Progress, error) {
	return s.progress.Get(ctx, userKey(userID))
}

func (s *TrainingService) Plans(ctx context.Context, userID int64) ([]models.TrainingPlan, error) {
	return s.plans.Get(ctx, userKey(userID))
}

func (s *TrainingService) Feedbacks(ctx context.Context, userID int64) ([]models.Feedback, error) {
	return s.feedbacks.Get(ctx, userKey(userID))
}

func (s *TrainingService) Exams(ctx context.Context, userID int64) ([]models.Exam, error) {
	return s.exams.Get(ctx, userKey(userID))
}

// GenerateWeek asks the server to build the plan for one week and lets
// every subscribed view know server state moved.
func (s *TrainingService) GenerateWeek(ctx context.Context, userID int64, week int) (*models.TrainingPlan, error) {
	if week < 1 {
		return nil, errors.New("semana inválida")
	}
	plan, err := s.api.GenerateWeekPlan(ctx, userID, week)
	if err != nil {
		return nil, err
	}
	afterMutation(ctx, s.bus, s.plans, userID)
	return plan, nil
}

type CompleteWorkoutInput struct {
	WorkoutID      int64
	RPERealizado   int
	FCMedia        *float64
	TempoRealizado *float64
}

// CompleteWorkout confirms the one-way incomplete→complete transition with
// the server. Optional readings stay nil when not measured.
func (s *TrainingService) CompleteWorkout(ctx context.Context, userID int64, input CompleteWorkoutInput) error {
	if input.RPERealizado < 1 || input.RPERealizado > 10 {
		return errors.New("RPE deve estar entre 1 e 10")
	}
	err := s.api.CompleteWorkout(ctx, input.WorkoutID, api.CompleteWorkoutRequest{
		RPERealizado:   input.RPERealizado,
		FCMedia:        input.FCMedia,
		TempoRealizado: input.TempoRealizado,
	})
	if err != nil {
		return err
	}
	afterMutation(ctx, s.bus, s.plans, userID)
	return nil
}

type FeedbackInput struct {
	Semana       int
	Consistencia int
	RPEMedio     float64
	FCMedio      *float64
	Observacoes  *string
}

// SubmitFeedback validates the report locally (validation failures never
// reach the server), posts it, and returns the revised performance factor.
func (s *TrainingService) SubmitFeedback(ctx context.Context, user models.User, input FeedbackInput) (float64, error) {
	if input.Semana < 1 {
		return 0, errors.New("semana inválida")
	}
	if input.Consistencia < 0 || input.Consistencia > user.DiasSemana {
		return 0, fmt.Errorf("consistência deve estar entre 0 e %d treinos", user.DiasSemana)
	}
	if input.RPEMedio < 1 || input.RPEMedio > 10 {
		return 0, errors.New("RPE deve estar entre 1 e 10")
	}

	factor, err := s.api.SubmitFeedback(ctx, user.ID, api.FeedbackRequest{
		Semana:       input.Semana,
		Consistencia: input.Consistencia,
		RPEMedio:     input.RPEMedio,
		FCMedio:      input.FCMedio,
		Observacoes:  input.Observacoes,
	})
	if err != nil {
		return 0, err
	}
	afterMutation(ctx, s.bus, s.feedbacks, user.ID)
	return factor, nil
}

type ExamInput struct {
	TipoExame string
	DataExame string
	Dados     map[string]float64
}

// SubmitExam records one exam of a known variant. The variant tag selects
// the expected field set explicitly.
func (s *TrainingService) SubmitExam(ctx context.Context, userID int64, input ExamInput) (*models.Exam, error) {
	fields := models.ExamFields(input.TipoExame)
	if fields == nil {
		return nil, fmt.Errorf("tipo de exame desconhecido: %s", input.TipoExame)
	}
	if input.DataExame == "" {
		return nil, errors.New("data do exame é obrigatória")
	}
	for _, field := range fields {
		if _, ok := input.Dados[field]; !ok {
			return nil, fmt.Errorf("campo obrigatório: %s", field)
		}
	}

	exam, err := s.api.SubmitExam(ctx, userID, api.ExamRequest{
		TipoExame: input.TipoExame,
		DataExame: input.DataExame,
		Dados:     input.Dados,
	})
	if err != nil {
		return nil, err
	}
	afterMutation(ctx, s.bus, s.exams, userID)
	return exam, nil
}

// afterMutation signals the bus and refetches the mutated entity so the
// initiating view renders fresh data immediately.
func afterMutation[T any](ctx context.Context, bus *refresh.Bus, f *fetcher.Fetcher[T], userID int64) {
	bus.Signal()
	if _, err := f.Refetch(ctx, userKey(userID)); err != nil {
		log.Printf("post-mutation refetch: %v", err)
	}
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func parseKey(key string) int64 {
	id, _ := strconv.ParseInt(key, 10, 64)
	return id
}
