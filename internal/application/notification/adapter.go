package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/vendora-api/internal/application/inventory"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/internal/domain/repository"
	"github.com/tu-usuario/vendora-api/pkg/logger"
)

// Prioridades de notificación derivadas de la severidad del evento.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
)

// AdapterMaxRetries reintentos del adaptador de inventario (sobreescribe el
// default del pipeline: las alertas de stock toleran más reintentos).
const AdapterMaxRetries = 5

// StockAlertPayload notificación de cruce de umbral, con el set de campos
// completo y tipado por severidad explícita (sin campos dinámicos).
type StockAlertPayload struct {
	VariantID              string          `json:"variant_id"`
	StoreID                string          `json:"store_id"`
	SKU                    string          `json:"sku"`
	ProductName            string          `json:"product_name"`
	PreviousQuantity       int64           `json:"previous_quantity"`
	Quantity               int64           `json:"quantity"`
	Severity               entity.Severity `json:"severity"`
	Threshold              int             `json:"threshold"`
	Priority               string          `json:"priority"`
	EstimatedDaysRemaining int             `json:"estimated_days_remaining"`
	Recipient              string          `json:"recipient"`
}

// SalesVelocity puerto de velocidad de venta reciente, para estimar los días
// de stock restantes.
type SalesVelocity interface {
	// WeeklyUnitsSold unidades vendidas por semana (ventana móvil reciente).
	WeeklyUnitsSold(ctx context.Context, variantID string) (decimal.Decimal, error)
}

// StockAlertAdapter traduce eventos de cruce de umbral en notificaciones y
// las delega al pipeline de entrega. Un goroutine de entrega por evento: las
// actualizaciones del log de una misma notificación quedan secuenciadas.
type StockAlertAdapter struct {
	pipeline  *Pipeline[StockAlertPayload]
	velocity  SalesVelocity
	recipient string
	log       *logger.Logger
}

// NewStockAlertAdapter construye el adaptador. recipient es el destinatario
// configurado de las alertas de stock de la plataforma.
func NewStockAlertAdapter(pipeline *Pipeline[StockAlertPayload], velocity SalesVelocity, recipient string, log *logger.Logger) *StockAlertAdapter {
	return &StockAlertAdapter{
		pipeline:  pipeline,
		velocity:  velocity,
		recipient: recipient,
		log:       log,
	}
}

// Register suscribe el adaptador a los tres topics de cruce de umbral.
func (a *StockAlertAdapter) Register(bus inventory.EventBus) {
	for _, topic := range []string{entity.TopicLowStock, entity.TopicCriticalStock, entity.TopicOutOfStock} {
		bus.Subscribe(topic, a.Handle)
	}
}

// Handle procesa un evento: construye el payload y lo entrega por el
// pipeline. El desenlace (incluido dead-letter) nunca se propaga al emisor.
func (a *StockAlertAdapter) Handle(ctx context.Context, ev *entity.CrossingEvent) {
	payload := a.ToPayload(ctx, ev)
	if _, err := a.pipeline.Notify(ctx, payload); err != nil {
		a.log.Warn().Err(err).
			Str("variant_id", ev.VariantID).
			Str("severity", string(ev.Severity)).
			Msg("payload de alerta de stock rechazado por validación")
	}
}

// ToPayload mapea el evento a una notificación: severidad → prioridad
// (agotado/crítico → urgent, bajo → high) y estimación de días restantes a
// partir de la velocidad de venta semanal.
func (a *StockAlertAdapter) ToPayload(ctx context.Context, ev *entity.CrossingEvent) StockAlertPayload {
	return StockAlertPayload{
		VariantID:              ev.VariantID,
		StoreID:                ev.StoreID,
		SKU:                    ev.SKU,
		ProductName:            ev.ProductName,
		PreviousQuantity:       ev.PreviousQuantity,
		Quantity:               ev.NewQuantity,
		Severity:               ev.Severity,
		Threshold:              ev.Threshold,
		Priority:               priorityFor(ev.Severity),
		EstimatedDaysRemaining: a.estimatedDaysRemaining(ctx, ev.VariantID, ev.NewQuantity),
		Recipient:              a.recipient,
	}
}

// estimatedDaysRemaining = floor(cantidad / (velocidad semanal / 7));
// 0 si la velocidad es desconocida o cero.
func (a *StockAlertAdapter) estimatedDaysRemaining(ctx context.Context, variantID string, quantity int64) int {
	if a.velocity == nil || quantity <= 0 {
		return 0
	}
	weekly, err := a.velocity.WeeklyUnitsSold(ctx, variantID)
	if err != nil {
		a.log.Debug().Err(err).Str("variant_id", variantID).Msg("velocidad de venta no disponible")
		return 0
	}
	if weekly.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	perDay := weekly.Div(decimal.NewFromInt(7))
	return int(decimal.NewFromInt(quantity).Div(perDay).IntPart())
}

func priorityFor(sev entity.Severity) string {
	if sev == entity.SeverityOutOfStock || sev == entity.SeverityCritical {
		return PriorityUrgent
	}
	return PriorityHigh
}

// ValidateStockAlert validación estructural del payload de alerta: campos de
// negocio obligatorios y destinatario sintácticamente válido.
func ValidateStockAlert(p StockAlertPayload) error {
	if p.VariantID == "" || p.SKU == "" {
		return fmt.Errorf("variant_id y sku son obligatorios")
	}
	if p.Severity.Rank() == 0 {
		return fmt.Errorf("severidad %q no notificable", p.Severity)
	}
	if _, err := mail.ParseAddress(p.Recipient); err != nil {
		return fmt.Errorf("destinatario %q inválido: %v", p.Recipient, err)
	}
	return nil
}

// alertAuditLogger ata el pipeline al log de auditoría persistente: un
// NotificationLog por alerta, serializando el payload como JSON.
type alertAuditLogger struct {
	repo repository.NotificationLogRepository
}

// NewAlertAuditLogger construye la capacidad de auditoría sobre el
// repositorio de logs de notificación.
func NewAlertAuditLogger(repo repository.NotificationLogRepository) AttemptLogger[StockAlertPayload] {
	return &alertAuditLogger{repo: repo}
}

func (l *alertAuditLogger) CreateAttempt(ctx context.Context, payload StockAlertPayload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("serializar payload: %w", err)
	}
	now := time.Now()
	log := &entity.NotificationLog{
		ID:            uuid.New().String(),
		Channel:       "email",
		Recipient:     payload.Recipient,
		Subject:       alertSubject(payload),
		Payload:       string(raw),
		Status:        entity.NotificationStatusPending,
		AttemptNumber: 1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := l.repo.Create(ctx, log); err != nil {
		return "", err
	}
	return log.ID, nil
}

func (l *alertAuditLogger) UpdateAttempt(ctx context.Context, logID, status string, attemptNumber int, lastError string) error {
	return l.repo.UpdateStatus(ctx, logID, status, attemptNumber, lastError)
}

// alertSubject asunto del correo según severidad.
func alertSubject(p StockAlertPayload) string {
	switch p.Severity {
	case entity.SeverityOutOfStock:
		return fmt.Sprintf("[AGOTADO] %s (%s) sin stock", p.ProductName, p.SKU)
	case entity.SeverityCritical:
		return fmt.Sprintf("[CRÍTICO] %s (%s): quedan %d unidades", p.ProductName, p.SKU, p.Quantity)
	default:
		return fmt.Sprintf("[STOCK BAJO] %s (%s): quedan %d unidades", p.ProductName, p.SKU, p.Quantity)
	}
}
