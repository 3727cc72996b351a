package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/vendora-api/internal/domain"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/pkg/logger"
)

// DefaultMaxRetries intentos máximos cuando no se configura otro valor.
const DefaultMaxRetries = 3

// SendResult resultado de un envío por el canal.
type SendResult struct {
	MessageID string
	// Delivered indica confirmación de entrega síncrona del canal. Los
	// canales sin confirmación (SMTP) dejan la notificación en Sent.
	Delivered bool
}

// Sender capacidad de envío por un canal concreto (email, SMS, push).
// El pipeline lo trata como dependencia opaca.
type Sender[T any] interface {
	Send(ctx context.Context, payload T) (*SendResult, error)
}

// AttemptLogger capacidad de auditoría de intentos de entrega. CreateAttempt
// registra el intento #1 en Pending y devuelve el id del log; UpdateAttempt
// muta ese log en cada transición de estado.
type AttemptLogger[T any] interface {
	CreateAttempt(ctx context.Context, payload T) (string, error)
	UpdateAttempt(ctx context.Context, logID, status string, attemptNumber int, lastError string) error
}

// ValidateFunc validación estructural del payload, específica del canal.
// Falla rápido: sin intento registrado ni reintentos.
type ValidateFunc[T any] func(payload T) error

// Options parámetros de entrega del pipeline.
type Options struct {
	MaxRetries int // <= 0 usa DefaultMaxRetries
	Backoff    Backoff
}

// Delivery desenlace de una notificación.
type Delivery struct {
	LogID     string
	Status    string
	Attempts  int
	LastError string
}

// Pipeline motor genérico de entrega con validación, reintentos con backoff
// y dead-letter. Parametrizado por el tipo de payload y las capacidades de
// envío y auditoría. La falla de entrega es terminal pero no excepcional: el
// caller nunca recibe un error por una entrega agotada, solo el estado
// DeadLettered en el resultado.
type Pipeline[T any] struct {
	sender     Sender[T]
	attempts   AttemptLogger[T]
	validate   ValidateFunc[T]
	maxRetries int
	backoff    Backoff
	sleep      func(ctx context.Context, d time.Duration) error
	log        *logger.Logger
}

// NewPipeline construye el pipeline de entrega.
func NewPipeline[T any](sender Sender[T], attempts AttemptLogger[T], validate ValidateFunc[T], opts Options, log *logger.Logger) *Pipeline[T] {
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Pipeline[T]{
		sender:     sender,
		attempts:   attempts,
		validate:   validate,
		maxRetries: maxRetries,
		backoff:    opts.Backoff,
		sleep:      sleepContext,
		log:        log,
	}
}

// WithSleep reemplaza la espera entre reintentos (tests sin tiempo real).
func (p *Pipeline[T]) WithSleep(sleep func(ctx context.Context, d time.Duration) error) *Pipeline[T] {
	p.sleep = sleep
	return p
}

// Notify entrega el payload: valida, registra el intento y ejecuta el ciclo
// de reintentos. Devuelve error solo por payload inválido; el dead-letter se
// reporta en Delivery.Status.
//
// Nota de idempotencia: el pipeline no deduplica reenvíos en el canal. Un
// fallo transitorio reintentado puede duplicar la entrega al destinatario si
// el canal no maneja claves de idempotencia.
func (p *Pipeline[T]) Notify(ctx context.Context, payload T) (*Delivery, error) {
	if p.validate != nil {
		if err := p.validate(payload); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
		}
	}

	logID, err := p.attempts.CreateAttempt(ctx, payload)
	if err != nil {
		// La auditoría no debe bloquear la entrega de la alerta.
		p.log.Warn().Err(err).Msg("no se pudo crear el log de intento de notificación")
		logID = ""
	}

	for attempt := 1; ; attempt++ {
		res, sendErr := p.sender.Send(ctx, payload)
		if sendErr == nil {
			status := entity.NotificationStatusSent
			if res != nil && res.Delivered {
				status = entity.NotificationStatusDelivered
			}
			p.updateAttempt(ctx, logID, status, attempt, "")
			return &Delivery{LogID: logID, Status: status, Attempts: attempt}, nil
		}

		p.updateAttempt(ctx, logID, entity.NotificationStatusFailed, attempt, sendErr.Error())

		transient := IsTransient(sendErr)
		if !transient || attempt >= p.maxRetries {
			return p.deadLetter(ctx, logID, attempt, transient, sendErr), nil
		}

		if serr := p.sleep(ctx, p.backoff.Delay(attempt)); serr != nil {
			// Contexto cancelado durante el backoff: no quedan reintentos posibles.
			return p.deadLetter(ctx, logID, attempt, transient, sendErr), nil
		}
	}
}

// deadLetter marca el log como DeadLettered y deja el contexto completo en
// el log estructurado para intervención manual del operador.
func (p *Pipeline[T]) deadLetter(ctx context.Context, logID string, attempts int, transient bool, cause error) *Delivery {
	p.updateAttempt(ctx, logID, entity.NotificationStatusDeadLettered, attempts, cause.Error())
	p.log.Error().
		Err(cause).
		Str("log_id", logID).
		Int("attempts", attempts).
		Bool("transient", transient).
		Msg("notificación enviada a dead-letter; requiere revisión manual")
	return &Delivery{
		LogID:     logID,
		Status:    entity.NotificationStatusDeadLettered,
		Attempts:  attempts,
		LastError: cause.Error(),
	}
}

func (p *Pipeline[T]) updateAttempt(ctx context.Context, logID, status string, attempt int, lastErr string) {
	if logID == "" {
		return
	}
	if err := p.attempts.UpdateAttempt(ctx, logID, status, attempt, lastErr); err != nil {
		p.log.Warn().Err(err).Str("log_id", logID).Str("status", status).
			Msg("no se pudo actualizar el log de intento")
	}
}

// sleepContext espera d o hasta que el contexto se cancele.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
