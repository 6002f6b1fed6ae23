// Package api is the typed HTTP client for the external training API. All
// pace, plan and performance-factor computation happens server side; this
// client only posts structured payloads and decodes the results.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/albqueque12/FitIA/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type CreateUserRequest struct {
	Idade             int     `json:"idade"`
	Peso              float64 `json:"peso"`
	Sexo              string  `json:"sexo"`
	Nivel             string  `json:"nivel"`
	DistanciaObjetivo float64 `json:"distancia_objetivo"`
	TempoObjetivoMin  int     `json:"tempo_objetivo_min"`
	SemanasTreino     int     `json:"semanas_treino"`
	DiasSemana        int     `json:"dias_semana"`
	Teste5kmTempo     float64 `json:"teste_5km_tempo"`
	Teste5kmFCMedia   float64 `json:"teste_5km_fc_media"`
	Teste5kmRPE       int     `json:"teste_5km_rpe"`
}

// CompleteWorkoutRequest keeps optional readings as pointers: a field the
// runner left blank goes out as null, which the server records as "not
// measured" rather than zero.
type CompleteWorkoutRequest struct {
	RPERealizado   int      `json:"rpe_realizado"`
	FCMedia        *float64 `json:"fc_media"`
	TempoRealizado *float64 `json:"tempo_realizado"`
}

type FeedbackRequest struct {
	Semana       int      `json:"semana"`
	Consistencia int      `json:"consistencia"`
	RPEMedio     float64  `json:"rpe_medio"`
	FCMedio      *float64 `json:"fc_medio"`
	Observacoes  *string  `json:"observacoes"`
}

type ExamRequest struct {
	TipoExame string             `json:"tipo_exame"`
	DataExame string             `json:"data_exame"`
	Dados     map[string]float64 `json:"dados_exame"`
}

// CreateUser registers a profile and returns the Session the server built
// for it (profile plus derived paces).
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*models.Session, error) {
	var sess models.Session
	if err := c.do(ctx, http.MethodPost, "/users", req, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (c *Client) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetProgress(ctx context.Context, userID int64) (*models.Progress, error) {
	var progress models.Progress
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/progress", userID), nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (c *Client) GenerateWeekPlan(ctx context.Context, userID int64, week int) (*models.TrainingPlan, error) {
	var out struct {
		TrainingPlan models.TrainingPlan `json:"training_plan"`
	}
	path := fmt.Sprintf("/users/%d/training-plan/%d", userID, week)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out.TrainingPlan, nil
}

func (c *Client) ListTrainingPlans(ctx context.Context, userID int64) ([]models.TrainingPlan, error) {
	var out struct {
		TrainingPlans []models.TrainingPlan `json:"training_plans"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/training-plans", userID), nil, &out); err != nil {
		return nil, err
	}
	return out.TrainingPlans, nil
}

func (c *Client) CompleteWorkout(ctx context.Context, workoutID int64, req CompleteWorkoutRequest) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/workouts/%d/complete", workoutID), req, nil)
}

// SubmitFeedback posts the weekly report and returns the revised
// performance factor.
func (c *Client) SubmitFeedback(ctx context.Context, userID int64, req FeedbackRequest) (float64, error) {
	var out struct {
		NewPerformanceFactor float64 `json:"new_performance_factor"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%d/feedback", userID), req, &out); err != nil {
		return 0, err
	}
	return out.NewPerformanceFactor, nil
}

func (c *Client) ListFeedback(ctx context.Context, userID int64) ([]models.Feedback, error) {
	var out struct {
		Feedbacks []models.Feedback `json:"feedbacks"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/feedback", userID), nil, &out); err != nil {
		return nil, err
	}
	return out.Feedbacks, nil
}

func (c *Client) SubmitExam(ctx context.Context, userID int64, req ExamRequest) (*models.Exam, error) {
	var out struct {
		Exam models.Exam `json:"exam"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%d/exams", userID), req, &out); err != nil {
		return nil, err
	}
	return &out.Exam, nil
}

func (c *Client) ListExams(ctx context.Context, userID int64) ([]models.Exam, error) {
	var out struct {
		Exams []models.Exam `json:"exams"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/exams", userID), nil, &out); err != nil {
		return nil, err
	}
	return out.Exams, nil
}

// do runs one request/response cycle. body and out may be nil. Failures
// come back as *Error carrying the taxonomy the views render.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return serverError(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return parseError(err)
		}
	}
	return nil
}

// serverError surfaces the server's own message verbatim when the error
// body carries one, and degrades to a generic notice otherwise.
func serverError(status int, raw []byte) *Error {
	var body struct {
		Error string `json:"error"`
	}
	message := ""
	if err := json.Unmarshal(raw, &body); err == nil {
		message = strings.TrimSpace(body.Error)
	}
	if message == "" {
		message = fmt.Sprintf("O servidor retornou um erro (status %d).", status)
	}
	return &Error{Kind: KindServer, Status: status, Message: message}
}
