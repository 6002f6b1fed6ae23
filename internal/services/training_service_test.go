package services

import (
	"context"
	"errors"
	"testing"

	"github.com/albqueque12/FitIA/internal/api"
	"github.com/albqueque12/FitIA/internal/models"
	"github.com/albqueque12/FitIA/internal/refresh"
)

type stubAPI struct {
	user     *models.User
	progress *models.Progress
	plans    []models.TrainingPlan
	feedback []models.Feedback
	exams    []models.Exam

	generateResult *models.TrainingPlan
	generateErr    error
	completeErr    error
	feedbackFactor float64
	feedbackErr    error
	examResult     *models.Exam

	listPlansCalls   int
	listFeedbackCall int
	listExamsCalls   int
	lastComplete     api.CompleteWorkoutRequest
	lastCompleteID   int64
	lastFeedback     api.FeedbackRequest
	lastExam         api.ExamRequest
	completeCalls    int
	feedbackCalls    int
	examCalls        int
}

func (s *stubAPI) GetUser(_ context.Context, _ int64) (*models.User, error) {
	return s.user, nil
}

func (s *stubAPI) GetProgress(_ context.Context, _ int64) (*models.Progress, error) {
	if s.progress == nil {
		return nil, errors.New("no progress")
	}
	return s.progress, nil
}

func (s *stubAPI) GenerateWeekPlan(_ context.Context, _ int64, _ int) (*models.TrainingPlan, error) {
	return s.generateResult, s.generateErr
}

func (s *stubAPI) ListTrainingPlans(_ context.Context, _ int64) ([]models.TrainingPlan, error) {
	s.listPlansCalls++
	return s.plans, nil
}

func (s *stubAPI) CompleteWorkout(_ context.Context, workoutID int64, req api.CompleteWorkoutRequest) error {
	s.completeCalls++
	s.lastCompleteID = workoutID
	s.lastComplete = req
	return s.completeErr
}

func (s *stubAPI) SubmitFeedback(_ context.Context, _ int64, req api.FeedbackRequest) (float64, error) {
	s.feedbackCalls++
	s.lastFeedback = req
	return s.feedbackFactor, s.feedbackErr
}

func (s *stubAPI) ListFeedback(_ context.Context, _ int64) ([]models.Feedback, error) {
	s.listFeedbackCall++
	return s.feedback, nil
}

func (s *stubAPI) SubmitExam(_ context.Context, _ int64, req api.ExamRequest) (*models.Exam, error) {
	s.examCalls++
	s.lastExam = req
	return s.examResult, nil
}

func (s *stubAPI) ListExams(_ context.Context, _ int64) ([]models.Exam, error) {
	s.listExamsCalls++
	return s.exams, nil
}

func TestGenerateWeekSignalsBusAndRefetchesPlans(t *testing.T) {
	stub := &stubAPI{generateResult: &models.TrainingPlan{Semana: 1}}
	bus := refresh.NewBus()
	service := NewTrainingService(stub, bus)

	ctx := context.Background()
	if _, err := service.Plans(ctx, 7); err != nil {
		t.Fatalf("Plans: %v", err)
	}
	if stub.listPlansCalls != 1 {
		t.Fatalf("expected one list call, got %d", stub.listPlansCalls)
	}

	plan, err := service.GenerateWeek(ctx, 7, 1)
	if err != nil {
		t.Fatalf("GenerateWeek: %v", err)
	}
	if plan.Semana != 1 {
		t.Fatalf("unexpected plan %+v", plan)
	}
	if bus.Value() != 1 {
		t.Fatalf("expected one bus signal, got %d", bus.Value())
	}
	if stub.listPlansCalls != 2 {
		t.Fatalf("expected the plans to be refetched, got %d calls", stub.listPlansCalls)
	}
}

func TestGenerateWeekFailureDoesNotSignal(t *testing.T) {
	stub := &stubAPI{generateErr: &api.Error{Kind: api.KindServer, Message: "Erro ao gerar plano de treino"}}
	bus := refresh.NewBus()
	service := NewTrainingService(stub, bus)

	_, err := service.GenerateWeek(context.Background(), 7, 2)
	if err == nil {
		t.Fatal("expected error")
	}
	if bus.Value() != 0 {
		t.Fatal("a failed mutation must not signal the bus")
	}
}

func TestCompleteWorkoutForwardsOptionalFieldsAsNil(t *testing.T) {
	stub := &stubAPI{}
	bus := refresh.NewBus()
	service := NewTrainingService(stub, bus)

	tempo := 30.5
	err := service.CompleteWorkout(context.Background(), 7, CompleteWorkoutInput{
		WorkoutID:      42,
		RPERealizado:   7,
		TempoRealizado: &tempo,
	})
	if err != nil {
		t.Fatalf("CompleteWorkout: %v", err)
	}
	if stub.lastCompleteID != 42 {
		t.Fatalf("expected workout 42, got %d", stub.lastCompleteID)
	}
	if stub.lastComplete.FCMedia != nil {
		t.Fatalf("blank FC must stay nil, got %v", *stub.lastComplete.FCMedia)
	}
	if stub.lastComplete.TempoRealizado == nil || *stub.lastComplete.TempoRealizado != 30.5 {
		t.Fatalf("unexpected tempo %+v", stub.lastComplete.TempoRealizado)
	}
	if bus.Value() != 1 {
		t.Fatal("completion must signal the refresh bus")
	}
}

func TestCompleteWorkoutRejectsOutOfRangeRPEWithoutCallingAPI(t *testing.T) {
	stub := &stubAPI{}
	service := NewTrainingService(stub, refresh.NewBus())

	for _, rpe := range []int{0, 11, -3} {
		err := service.CompleteWorkout(context.Background(), 7, CompleteWorkoutInput{WorkoutID: 1, RPERealizado: rpe})
		if err == nil {
			t.Fatalf("expected RPE %d to be rejected", rpe)
		}
	}
	if stub.completeCalls != 0 {
		t.Fatal("validation failures must never reach the server")
	}
}

func TestSubmitFeedbackBoundsConsistencyByTrainingDays(t *testing.T) {
	stub := &stubAPI{feedbackFactor: 1.05}
	bus := refresh.NewBus()
	service := NewTrainingService(stub, bus)
	user := models.User{ID: 7, DiasSemana: 4}

	_, err := service.SubmitFeedback(context.Background(), user, FeedbackInput{
		Semana: 1, Consistencia: 5, RPEMedio: 6,
	})
	if err == nil {
		t.Fatal("expected consistencia above dias_semana to be rejected")
	}
	if stub.feedbackCalls != 0 {
		t.Fatal("validation failure must not reach the server")
	}

	factor, err := service.SubmitFeedback(context.Background(), user, FeedbackInput{
		Semana: 1, Consistencia: 3, RPEMedio: 6.5,
	})
	if err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	if factor != 1.05 {
		t.Fatalf("expected new factor 1.05, got %v", factor)
	}
	if stub.lastFeedback.FCMedio != nil || stub.lastFeedback.Observacoes != nil {
		t.Fatalf("optional fields must stay nil: %+v", stub.lastFeedback)
	}
	if bus.Value() != 1 {
		t.Fatal("feedback must signal the refresh bus")
	}
	if stub.listFeedbackCall == 0 {
		t.Fatal("feedback history must be refetched after submit")
	}
}

func TestSubmitExamRequiresVariantFields(t *testing.T) {
	stub := &stubAPI{examResult: &models.Exam{ID: 1, TipoExame: models.ExamEspirometria}}
	bus := refresh.NewBus()
	service := NewTrainingService(stub, bus)

	_, err := service.SubmitExam(context.Background(), 7, ExamInput{
		TipoExame: models.ExamEspirometria,
		DataExame: "2026-08-30",
		Dados:     map[string]float64{"cvf": 4.5, "vef1": 3.8},
	})
	if err == nil {
		t.Fatal("expected missing variant fields to be rejected")
	}

	_, err = service.SubmitExam(context.Background(), 7, ExamInput{
		TipoExame: "ressonancia",
		DataExame: "2026-08-30",
		Dados:     map[string]float64{},
	})
	if err == nil {
		t.Fatal("expected unknown variant tag to be rejected")
	}
	if stub.examCalls != 0 {
		t.Fatal("invalid exams must never reach the server")
	}

	exam, err := service.SubmitExam(context.Background(), 7, ExamInput{
		TipoExame: models.ExamEspirometria,
		DataExame: "2026-08-30",
		Dados: map[string]float64{
			"cvf": 4.5, "vef1": 3.8, "relacao_vef1_cvf": 0.84, "pef": 9.1,
		},
	})
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}
	if exam.TipoExame != models.ExamEspirometria {
		t.Fatalf("unexpected exam %+v", exam)
	}
	if bus.Value() != 1 || stub.listExamsCalls == 0 {
		t.Fatal("exam submission must signal the bus and refetch the list")
	}
}

func TestReadsAreCachedAcrossViewsUntilSignal(t *testing.T) {
	stub := &stubAPI{
		progress: &models.Progress{Statistics: models.Statistics{TotalPlans: 2}},
		plans:    []models.TrainingPlan{{Semana: 1}, {Semana: 2}},
	}
	bus := refresh.NewBus()
	service := NewTrainingService(stub, bus)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := service.Plans(ctx, 7); err != nil {
			t.Fatalf("Plans: %v", err)
		}
	}
	if stub.listPlansCalls != 1 {
		t.Fatalf("expected one fetch while fresh, got %d", stub.listPlansCalls)
	}

	bus.Signal()
	if _, err := service.Plans(ctx, 7); err != nil {
		t.Fatalf("Plans after signal: %v", err)
	}
	if stub.listPlansCalls != 2 {
		t.Fatalf("expected refetch after signal, got %d", stub.listPlansCalls)
	}
}
