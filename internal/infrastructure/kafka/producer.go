package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/DRSN-tech/stock-backend/internal/cfg"
	"github.com/DRSN-tech/stock-backend/internal/usecase"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/DRSN-tech/stock-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

const (
	headerEventID   = "event_id"
	headerEventType = "event_type"
)

type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: false,
		BatchSize:              10,
		BatchTimeout:           100 * time.Millisecond,
		WriteTimeout:           10 * time.Second,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}
}

// WriteRawMessage публикует уже сериализованное событие. Ключ — id записи,
// поэтому события одной записи попадают в одну партицию и сохраняют порядок.
// Тип и id события дублируются в заголовках, чтобы потребители могли фильтровать без разбора payload.
func (p *Producer) WriteRawMessage(ctx context.Context, req *usecase.WriteRawMessageReq) error {
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(req.Key, 10)),
		Value: req.Payload,
		Headers: []kafka.Header{
			{Key: headerEventID, Value: []byte(req.EventID)},
			{Key: headerEventType, Value: []byte(req.EventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warnf("kafka write %s (%s) failed: %s", req.EventID, req.EventType, err.Error())
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// EnsureTopic создаёт топик, если его нет. Создание выполняется на контроллере кластера,
// брокеры из конфигурации перебираются до первого доступного.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	conn, err := p.dialAny(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	controller, err := conn.Controller()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	dialer := &kafka.Dialer{Timeout: timeout}
	ctrlConn, err := dialer.DialContext(ctx, p.cfg.NetworkMode, net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer ctrlConn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = ctrlConn.SetDeadline(deadline)
	}

	err = ctrlConn.CreateTopics(kafka.TopicConfig{
		Topic:             p.cfg.Topic,
		NumPartitions:     p.cfg.Partitions,
		ReplicationFactor: p.cfg.ReplicationFactor,
	})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
	}

	p.logger.Infof("kafka topic %s is ready", p.cfg.Topic)
	return nil
}

func (p *Producer) dialAny(ctx context.Context) (*kafka.Conn, error) {
	dialer := &kafka.Dialer{}

	var errs []error
	for _, broker := range p.cfg.Brokers {
		conn, err := dialer.DialContext(ctx, p.cfg.NetworkMode, broker)
		if err == nil {
			return conn, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", broker, err))
	}

	return nil, errors.Join(errs...)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
