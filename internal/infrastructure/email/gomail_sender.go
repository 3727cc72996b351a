package email

import (
	"context"
	"fmt"

	"github.com/tu-usuario/vendora-api/internal/application/notification"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"gopkg.in/gomail.v2"
)

var _ notification.Sender[notification.StockAlertPayload] = (*StockAlertSender)(nil)

// StockAlertSender envía alertas de stock por correo vía SMTP. SMTP no
// confirma entrega al destinatario: los envíos exitosos quedan en Sent,
// nunca en Delivered.
type StockAlertSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewStockAlertSender construye el canal de correo.
func NewStockAlertSender(host string, port int, username, password, from string) *StockAlertSender {
	return &StockAlertSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send arma y entrega el correo al servidor SMTP.
func (s *StockAlertSender) Send(ctx context.Context, payload notification.StockAlertPayload) (*notification.SendResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", payload.Recipient)
	m.SetHeader("Subject", subjectFor(payload))
	m.SetBody("text/plain", bodyFor(payload))

	if err := s.dialer.DialAndSend(m); err != nil {
		return nil, fmt.Errorf("enviar correo de alerta: %w", err)
	}
	return &notification.SendResult{Delivered: false}, nil
}

func subjectFor(p notification.StockAlertPayload) string {
	switch p.Severity {
	case entity.SeverityOutOfStock:
		return fmt.Sprintf("[AGOTADO] %s (%s) sin stock", p.ProductName, p.SKU)
	case entity.SeverityCritical:
		return fmt.Sprintf("[CRÍTICO] %s (%s): quedan %d unidades", p.ProductName, p.SKU, p.Quantity)
	default:
		return fmt.Sprintf("[STOCK BAJO] %s (%s): quedan %d unidades", p.ProductName, p.SKU, p.Quantity)
	}
}

func bodyFor(p notification.StockAlertPayload) string {
	body := fmt.Sprintf(
		"Producto: %s\nSKU: %s\nTienda: %s\nCantidad: %d (antes %d)\nSeveridad: %s\nPrioridad: %s\n",
		p.ProductName, p.SKU, p.StoreID, p.Quantity, p.PreviousQuantity, p.Severity, p.Priority,
	)
	if p.EstimatedDaysRemaining > 0 {
		body += fmt.Sprintf("Días de stock estimados: %d\n", p.EstimatedDaysRemaining)
	}
	return body
}
