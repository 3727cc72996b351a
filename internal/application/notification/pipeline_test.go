package notification

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/vendora-api/internal/domain"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/pkg/logger"
)

type testPayload struct {
	ID string
}

// fakeSender falla con los errores programados en orden y luego responde ok.
type fakeSender struct {
	errs      []error
	delivered bool
	calls     int
}

func (s *fakeSender) Send(_ context.Context, _ testPayload) (*SendResult, error) {
	s.calls++
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return nil, err
	}
	return &SendResult{MessageID: fmt.Sprintf("msg-%d", s.calls), Delivered: s.delivered}, nil
}

type attemptUpdate struct {
	status  string
	attempt int
}

// fakeAttempts registra las transiciones de estado del log de intentos.
type fakeAttempts struct {
	createErr error
	creates   int
	updates   []attemptUpdate
}

func (a *fakeAttempts) CreateAttempt(_ context.Context, _ testPayload) (string, error) {
	a.creates++
	if a.createErr != nil {
		return "", a.createErr
	}
	return "log-1", nil
}

func (a *fakeAttempts) UpdateAttempt(_ context.Context, _, status string, attemptNumber int, _ string) error {
	a.updates = append(a.updates, attemptUpdate{status: status, attempt: attemptNumber})
	return nil
}

// newTestPipeline construye un pipeline con sleep instrumentado: registra las
// esperas sin consumir tiempo real.
func newTestPipeline(sender *fakeSender, attempts *fakeAttempts, opts Options) (*Pipeline[testPayload], *[]time.Duration) {
	var sleeps []time.Duration
	p := NewPipeline[testPayload](sender, attempts, nil, opts, logger.Nop()).
		WithSleep(func(ctx context.Context, d time.Duration) error {
			sleeps = append(sleeps, d)
			return ctx.Err()
		})
	return p, &sleeps
}

func TestNotify_ExitoAlPrimerIntento(t *testing.T) {
	sender := &fakeSender{}
	attempts := &fakeAttempts{}
	p, sleeps := newTestPipeline(sender, attempts, Options{})

	delivery, err := p.Notify(context.Background(), testPayload{ID: "n1"})
	require.NoError(t, err)

	assert.Equal(t, entity.NotificationStatusSent, delivery.Status)
	assert.Equal(t, 1, delivery.Attempts)
	assert.Equal(t, "log-1", delivery.LogID)
	assert.Equal(t, 1, sender.calls)
	assert.Empty(t, *sleeps, "sin reintentos no hay esperas")
	assert.Equal(t, []attemptUpdate{{entity.NotificationStatusSent, 1}}, attempts.updates)
}

func TestNotify_CanalConConfirmacionQuedaDelivered(t *testing.T) {
	sender := &fakeSender{delivered: true}
	p, _ := newTestPipeline(sender, &fakeAttempts{}, Options{})

	delivery, err := p.Notify(context.Background(), testPayload{ID: "n1"})
	require.NoError(t, err)
	assert.Equal(t, entity.NotificationStatusDelivered, delivery.Status)
}

func TestNotify_TransitorioReintentaConBackoffExponencial(t *testing.T) {
	sender := &fakeSender{errs: []error{
		errors.New("dial tcp: connection refused"),
		errors.New("read: connection reset by peer"),
	}}
	attempts := &fakeAttempts{}
	p, sleeps := newTestPipeline(sender, attempts, Options{
		MaxRetries: 4,
		Backoff:    Backoff{Mode: BackoffExponential, BaseDelay: 2 * time.Second},
	})

	delivery, err := p.Notify(context.Background(), testPayload{ID: "n1"})
	require.NoError(t, err)

	assert.Equal(t, entity.NotificationStatusSent, delivery.Status)
	assert.Equal(t, 3, delivery.Attempts)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *sleeps,
		"backoff exponencial: 2000ms, 4000ms")
	assert.Equal(t, []attemptUpdate{
		{entity.NotificationStatusFailed, 1},
		{entity.NotificationStatusFailed, 2},
		{entity.NotificationStatusSent, 3},
	}, attempts.updates)
}

func TestNotify_BackoffFijoEsperaSiempreLoMismo(t *testing.T) {
	sender := &fakeSender{errs: []error{
		errors.New("timeout"),
		errors.New("timeout"),
	}}
	p, sleeps := newTestPipeline(sender, &fakeAttempts{}, Options{
		MaxRetries: 3,
		Backoff:    Backoff{Mode: BackoffFixed, BaseDelay: 500 * time.Millisecond},
	})

	delivery, err := p.Notify(context.Background(), testPayload{ID: "n1"})
	require.NoError(t, err)
	assert.Equal(t, entity.NotificationStatusSent, delivery.Status)
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, *sleeps)
}

func TestNotify_ErrorPermanenteNoReintenta(t *testing.T) {
	sender := &fakeSender{errs: []error{
		errors.New("550 mailbox does not exist"),
	}}
	attempts := &fakeAttempts{}
	p, sleeps := newTestPipeline(sender, attempts, Options{MaxRetries: 5})

	delivery, err := p.Notify(context.Background(), testPayload{ID: "n1"})
	require.NoError(t, err, "dead-letter no es excepcional para el caller")

	assert.Equal(t, entity.NotificationStatusDeadLettered, delivery.Status)
	assert.Equal(t, 1, delivery.Attempts)
	assert.Contains(t, delivery.LastError, "mailbox does not exist")
	assert.Equal(t, 1, sender.calls, "un error permanente corta el ciclo de inmediato")
	assert.Empty(t, *sleeps)
	assert.Equal(t, []attemptUpdate{
		{entity.NotificationStatusFailed, 1},
		{entity.NotificationStatusDeadLettered, 1},
	}, attempts.updates)
}

func TestNotify_ReintentosAgotadosTerminaEnDeadLetter(t *testing.T) {
	sender := &fakeSender{errs: []error{
		errors.New("connection refused"),
		errors.New("connection refused"),
		errors.New("connection refused"),
		errors.New("connection refused"),
	}}
	attempts := &fakeAttempts{}
	p, sleeps := newTestPipeline(sender, attempts, Options{
		MaxRetries: 4,
		Backoff:    Backoff{Mode: BackoffExponential, BaseDelay: 2 * time.Second},
	})

	delivery, err := p.Notify(context.Background(), testPayload{ID: "n1"})
	require.NoError(t, err)

	assert.Equal(t, entity.NotificationStatusDeadLettered, delivery.Status)
	assert.Equal(t, 4, delivery.Attempts)
	assert.Equal(t, 4, sender.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}, *sleeps,
		"espera tras cada intento fallido salvo el último")
	require.Len(t, attempts.updates, 5)
	assert.Equal(t, attemptUpdate{entity.NotificationStatusDeadLettered, 4}, attempts.updates[4])
}

func TestNotify_ValidacionFallaRapidoSinEnviarNiAuditar(t *testing.T) {
	sender := &fakeSender{}
	attempts := &fakeAttempts{}
	p := NewPipeline[testPayload](sender, attempts, func(p testPayload) error {
		if p.ID == "" {
			return errors.New("id requerido")
		}
		return nil
	}, Options{}, logger.Nop())

	_, err := p.Notify(context.Background(), testPayload{})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	assert.Equal(t, 0, sender.calls, "payload inválido no llega al canal")
	assert.Equal(t, 0, attempts.creates, "payload inválido no deja log de intento")
}

func TestNotify_FallaDeAuditoriaNoBloqueaLaEntrega(t *testing.T) {
	sender := &fakeSender{}
	attempts := &fakeAttempts{createErr: errors.New("db down")}
	p, _ := newTestPipeline(sender, attempts, Options{})

	delivery, err := p.Notify(context.Background(), testPayload{ID: "n1"})
	require.NoError(t, err)
	assert.Equal(t, entity.NotificationStatusSent, delivery.Status)
	assert.Empty(t, delivery.LogID)
	assert.Empty(t, attempts.updates, "sin log creado no hay actualizaciones")
}

func TestNotify_ContextoCanceladoDuranteBackoffVaADeadLetter(t *testing.T) {
	sender := &fakeSender{errs: []error{
		errors.New("connection refused"),
		errors.New("connection refused"),
	}}
	ctx, cancel := context.WithCancel(context.Background())

	p := NewPipeline[testPayload](sender, &fakeAttempts{}, nil, Options{MaxRetries: 5}, logger.Nop()).
		WithSleep(func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		})

	delivery, err := p.Notify(ctx, testPayload{ID: "n1"})
	require.NoError(t, err)
	assert.Equal(t, entity.NotificationStatusDeadLettered, delivery.Status)
	assert.Equal(t, 1, delivery.Attempts)
}

func TestNotify_MaxRetriesPorDefecto(t *testing.T) {
	sender := &fakeSender{errs: []error{
		errors.New("timeout"),
		errors.New("timeout"),
		errors.New("timeout"),
		errors.New("timeout"),
	}}
	p, _ := newTestPipeline(sender, &fakeAttempts{}, Options{})

	delivery, err := p.Notify(context.Background(), testPayload{ID: "n1"})
	require.NoError(t, err)
	assert.Equal(t, entity.NotificationStatusDeadLettered, delivery.Status)
	assert.Equal(t, DefaultMaxRetries, delivery.Attempts)
}
