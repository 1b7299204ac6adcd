// Package events publishes domain notifications for monitor consumers.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Subjects used on the bus.
const (
	SubjectMarcajeEditado    = "classroom.marcaje.editado"
	SubjectDispositivoEstado = "classroom.dispositivo.estado"
	SubjectIncidenciaAbierta = "classroom.incidencia.abierta"
)

// Event is the envelope published for every notification.
type Event struct {
	Subject    string                 `json:"-"`
	EntityID   string                 `json:"entityId"`
	OccurredAt time.Time              `json:"occurredAt"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

// Publisher fans out domain events. A nil Publisher is a valid no-op, so
// services never need to branch on whether the bus is configured.
type Publisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// Connect dials the NATS server and wraps the connection in a Publisher.
func Connect(url string, logger zerolog.Logger) (*Publisher, error) {
	if url == "" {
		return nil, fmt.Errorf("nats url must not be empty")
	}

	conn, err := nats.Connect(url, nats.Name("classroom-api"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return &Publisher{
		conn:   conn,
		logger: logger.With().Str("component", "events").Logger(),
	}, nil
}

// Publish emits the event. Delivery is best effort: failures are logged and
// never propagate into the request path.
func (p *Publisher) Publish(event Event) {
	if p == nil || p.conn == nil {
		return
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Str("subject", event.Subject).Msg("failed to encode event")
		return
	}

	if err := p.conn.Publish(event.Subject, payload); err != nil {
		p.logger.Warn().Err(err).Str("subject", event.Subject).Msg("failed to publish event")
	}
}

// Close drains the underlying connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}
