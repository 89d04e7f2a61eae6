package worker

// alerta_worker.go
// Processes low-stock alert jobs from QueueAlertas and notifies the
// warehouse contact via SMTP.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertaStockPayload is the job envelope sent to QueueAlertas. Quantities
// travel as strings to keep decimal precision through the JSON roundtrip.
type AlertaStockPayload struct {
	ProductoPorAlmacenID string `json:"producto_por_almacen_id"`
	Producto             string `json:"producto"`
	StockFraccion        string `json:"stock_fraccion"`
	StockMinimo          string `json:"stock_minimo"`
}

// AlertaStockWorker sends the low-stock notification email.
type AlertaStockWorker struct {
	mailer       *infra.Mailer
	destinatario string
}

func NewAlertaStockWorker(mailer *infra.Mailer, destinatario string) *AlertaStockWorker {
	return &AlertaStockWorker{mailer: mailer, destinatario: destinatario}
}

func (w *AlertaStockWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload AlertaStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return
	}
	if w.destinatario == "" {
		log.Warn().Msg("alerta_worker: no recipient configured — skipping")
		return
	}

	subject := fmt.Sprintf("Stock bajo: %s", payload.Producto)
	body := fmt.Sprintf(
		"El producto %s quedó con stock %s, por debajo del mínimo %s (producto_por_almacen %s).",
		payload.Producto, payload.StockFraccion, payload.StockMinimo, payload.ProductoPorAlmacenID)

	if err := w.mailer.SendAlerta(w.destinatario, subject, body); err != nil {
		log.Error().Err(err).Str("producto", payload.Producto).Msg("alerta_worker: failed to send email")
		return
	}
	log.Info().Str("producto", payload.Producto).Msg("alerta_worker: low-stock alert sent")
}
