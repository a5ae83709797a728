package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/stock-backend/internal/usecase"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/DRSN-tech/stock-backend/pkg/jitter"
	"github.com/DRSN-tech/stock-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const (
	outboxChannel = "outbox_pending"

	defaultBatchSize     = 10
	defaultRetryInterval = 30 * time.Second
	defaultStaleAfter    = time.Minute

	reconnectBase  = 2 * time.Second
	reconnectLimit = time.Minute
)

// OutboxWorker публикует события из outbox в Kafka. Новые события приходят через
// LISTEN outbox_pending, неотправленные периодически возвращаются в очередь.
type OutboxWorker struct {
	repo      usecase.OutboxRepository
	logger    logger.Logger
	producer  usecase.MessageProducer
	dbConnStr string

	batchSize     int
	retryInterval time.Duration
	staleAfter    time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	dbConnStr string,
) *OutboxWorker {
	return &OutboxWorker{
		repo:          repo,
		logger:        logger,
		producer:      producer,
		dbConnStr:     dbConnStr,
		batchSize:     defaultBatchSize,
		retryInterval: defaultRetryInterval,
		staleAfter:    defaultStaleAfter,
		stop:          make(chan struct{}),
	}
}

// Start запускает публикацию и подписку на уведомления. Вызывается один раз.
func (w *OutboxWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()

	go func() {
		defer w.wg.Done()
		w.listenOutboxNotifications(ctx)
	}()
}

// Stop останавливает горутины worker'а и ждёт их завершения. Повторный вызов безопасен.
// Ожидание LISTEN прерывается сразу, не дожидаясь таймаута.
func (w *OutboxWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		if w.cancel != nil {
			w.cancel()
		}
	})
	w.wg.Wait()
}

func (w *OutboxWorker) run(ctx context.Context) {
	w.logger.Infof("Draining pending outbox events on startup...")
	w.drain(ctx)

	ticker := time.NewTicker(w.retryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("Outbox worker stopped by context cancellation")
			return
		case <-w.stop:
			return
		case <-ticker.C:
			w.retryStale(ctx)
		}
	}
}

// retryStale возвращает застрявшие события в pending и сразу пробует отправить их снова.
func (w *OutboxWorker) retryStale(ctx context.Context) {
	released, err := w.repo.ReleaseStale(ctx, w.staleAfter)
	if err != nil {
		w.logger.Warnf("release stale outbox events failed: %v", err)
		return
	}
	if released > 0 {
		w.logger.Infof("released %d stale outbox events", released)
		w.drain(ctx)
	}
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	var conn *pgx.Conn
	defer func() {
		if conn != nil {
			_ = conn.Close(context.Background())
		}
	}()

	attempt := 0
	for {
		if conn == nil {
			c, err := w.connectListener(ctx)
			if err != nil {
				delay := jitter.ExponentialBackoff(reconnectBase, reconnectLimit, attempt, jitter.DefaultJitter)
				w.logger.Warnf("LISTEN connect failed: %v, retry in %s", err, delay)
				attempt++
				if !w.sleep(ctx, delay) {
					return
				}
				continue
			}
			conn = c
			if attempt > 0 {
				// Пока соединения не было, уведомления могли потеряться.
				w.drain(ctx)
			}
			attempt = 0
		}

		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
		}

		waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				continue
			}
			w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			_ = conn.Close(ctx)
			conn = nil
			attempt = 1
			continue
		}

		if notif != nil && notif.Channel == outboxChannel {
			w.logger.Debugf("Received outbox notification, draining outbox events")
			w.drain(ctx)
		}
	}
}

func (w *OutboxWorker) connectListener(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, w.dbConnStr)
	if err != nil {
		return nil, e.Wrap("failed to connect for LISTEN", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+outboxChannel); err != nil {
		_ = conn.Close(ctx)
		return nil, e.Wrap("failed to LISTEN", err)
	}

	w.logger.Infof("Subscribed to '%s' channel", outboxChannel)
	return conn, nil
}

// sleep ждёт d и возвращает false, если worker остановлен раньше.
func (w *OutboxWorker) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-w.stop:
		return false
	case <-t.C:
		return true
	}
}

func (w *OutboxWorker) drain(ctx context.Context) {
	for {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

// processBatch отправляет одну пачку событий. Неотправленные события остаются
// в processing, пока retryStale не вернёт их в очередь.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchSize)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			w.logger.Warnf("publish outbox event %s failed: %v", event.EventID, err)
			continue
		}
		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return true, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	err := w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event))
	if err != nil {
		if isRetryableError(err) {
			return e.Wrap("temporary Kafka failure, will retry", err)
		}
		return e.Wrap("permanent Kafka failure", err)
	}
	return nil
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
