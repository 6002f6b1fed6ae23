// Package wizard drives the three-step registration flow. Each step's
// fields map to one of the server's validation groups, so a profile is
// never dispatched half-specified. Gating is purely presence based; the
// server remains the authority on value ranges.
package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/albqueque12/FitIA/internal/api"
)

type Step int

const (
	StepPersonal Step = iota + 1
	StepGoals
	StepFitnessTest
)

// Form keeps every field as the raw string the runner typed. Values are
// only parsed at submit time; moving between steps never rewrites them.
type Form struct {
	Idade string
	Peso  string
	Sexo  string
	Nivel string

	DistanciaObjetivo    string
	TempoObjetivoHoras   string
	TempoObjetivoMinutos string
	SemanasTreino        string
	DiasSemana           string

	Teste5kmTempo   string
	Teste5kmFCMedia string
	Teste5kmRPE     string
}

type Controller struct {
	mu   sync.Mutex
	step Step
	form Form
}

func NewController() *Controller {
	return &Controller{step: StepPersonal}
}

func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Update merges the posted values for the current step's fields.
func (c *Controller) Update(form Form) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.step {
	case StepPersonal:
		c.form.Idade = form.Idade
		c.form.Peso = form.Peso
		c.form.Sexo = form.Sexo
		c.form.Nivel = form.Nivel
	case StepGoals:
		c.form.DistanciaObjetivo = form.DistanciaObjetivo
		c.form.TempoObjetivoHoras = form.TempoObjetivoHoras
		c.form.TempoObjetivoMinutos = form.TempoObjetivoMinutos
		c.form.SemanasTreino = form.SemanasTreino
		c.form.DiasSemana = form.DiasSemana
	case StepFitnessTest:
		c.form.Teste5kmTempo = form.Teste5kmTempo
		c.form.Teste5kmFCMedia = form.Teste5kmFCMedia
		c.form.Teste5kmRPE = form.Teste5kmRPE
	}
}

// Next advances to the following step if the current one is complete.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := validateStep(c.step, c.form); err != nil {
		return err
	}
	switch c.step {
	case StepPersonal:
		c.step = StepGoals
	case StepGoals:
		c.step = StepFitnessTest
	}
	return nil
}

// Back is always permitted and never clears entered data.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step > StepPersonal {
		c.step--
	}
}

// Reset returns the wizard to a blank first step, for after a successful
// submission or a logout.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = StepPersonal
	c.form = Form{}
}

// Payload validates all three steps and assembles the registration request.
// The goal time is combined into total minutes here, right before dispatch.
func (c *Controller) Payload() (api.CreateUserRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, step := range []Step{StepPersonal, StepGoals, StepFitnessTest} {
		if err := validateStep(step, c.form); err != nil {
			return api.CreateUserRequest{}, err
		}
	}

	idade, err := parseInt("idade", c.form.Idade)
	if err != nil {
		return api.CreateUserRequest{}, err
	}
	peso, err := parseFloat("peso", c.form.Peso)
	if err != nil {
		return api.CreateUserRequest{}, err
	}
	distancia, err := parseFloat("distância objetivo", c.form.DistanciaObjetivo)
	if err != nil {
		return api.CreateUserRequest{}, err
	}
	horas, err := parseInt("tempo objetivo (horas)", c.form.TempoObjetivoHoras)
	if err != nil {
		return api.CreateUserRequest{}, err
	}
	minutos, err := parseInt("tempo objetivo (minutos)", c.form.TempoObjetivoMinutos)
	if err != nil {
		return api.CreateUserRequest{}, err
	}
	semanas, err := parseInt("semanas de treino", c.form.SemanasTreino)
	if err != nil {
		return api.CreateUserRequest{}, err
	}
	dias, err := parseInt("dias por semana", c.form.DiasSemana)
	if err != nil {
		return api.CreateUserRequest{}, err
	}
	tempo5km, err := parseFloat("tempo do teste de 5km", c.form.Teste5kmTempo)
	if err != nil {
		return api.CreateUserRequest{}, err
	}
	fc5km, err := parseFloat("FC média do teste", c.form.Teste5kmFCMedia)
	if err != nil {
		return api.CreateUserRequest{}, err
	}
	rpe5km, err := parseInt("RPE do teste", c.form.Teste5kmRPE)
	if err != nil {
		return api.CreateUserRequest{}, err
	}

	return api.CreateUserRequest{
		Idade:             idade,
		Peso:              peso,
		Sexo:              c.form.Sexo,
		Nivel:             c.form.Nivel,
		DistanciaObjetivo: distancia,
		TempoObjetivoMin:  horas*60 + minutos,
		SemanasTreino:     semanas,
		DiasSemana:        dias,
		Teste5kmTempo:     tempo5km,
		Teste5kmFCMedia:   fc5km,
		Teste5kmRPE:       rpe5km,
	}, nil
}

var errIncompleteStep = errors.New("preencha todos os campos obrigatórios")

func validateStep(step Step, form Form) error {
	var fields []string
	switch step {
	case StepPersonal:
		fields = []string{form.Idade, form.Peso, form.Sexo, form.Nivel}
	case StepGoals:
		fields = []string{
			form.DistanciaObjetivo, form.TempoObjetivoHoras,
			form.TempoObjetivoMinutos, form.SemanasTreino, form.DiasSemana,
		}
	case StepFitnessTest:
		fields = []string{form.Teste5kmTempo, form.Teste5kmFCMedia, form.Teste5kmRPE}
	}
	for _, field := range fields {
		if strings.TrimSpace(field) == "" {
			return errIncompleteStep
		}
	}
	return nil
}

func parseInt(label, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("valor inválido para %s", label)
	}
	return n, nil
}

func parseFloat(label, value string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("valor inválido para %s", label)
	}
	return n, nil
}
