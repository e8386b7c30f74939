package notify

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/symbiont/internal/model"
	"github.com/LeonardoBeccarini/symbiont/pkg/rabbitmq"
)

// DefaultTopicTemplate is where toasts are published for companion displays.
const DefaultTopicTemplate = "symbiont/notify/{kind}"

// MQTT publishes notifications as NotificationEvent JSON. Publishing runs on
// its own goroutine and failures are only logged.
type MQTT struct {
	publisherFor func(topic string) rabbitmq.IPublisher
	topicTmpl    string
	log          *zap.Logger
	now          func() time.Time
}

func NewMQTT(publisherFor func(topic string) rabbitmq.IPublisher, topicTmpl string, l *zap.Logger) *MQTT {
	if topicTmpl == "" {
		topicTmpl = DefaultTopicTemplate
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &MQTT{publisherFor: publisherFor, topicTmpl: topicTmpl, log: l, now: time.Now}
}

func (m *MQTT) Notify(kind Kind, message string) {
	evt := model.NotificationEvent{
		ID:        uuid.NewString(),
		Kind:      string(kind),
		Message:   message,
		Timestamp: m.now().UTC(),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		m.log.Warn("notify: marshal event", zap.Error(err))
		return
	}
	topic := strings.ReplaceAll(m.topicTmpl, "{kind}", string(kind))
	go func() {
		if err := m.publisherFor(topic).PublishMessage(string(b)); err != nil {
			m.log.Warn("notify: mqtt publish failed", zap.String("topic", topic), zap.Error(err))
		}
	}()
}
