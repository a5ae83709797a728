package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

type resource struct {
	name string
	fn   Func
}

// Closer закрывает зарегистрированные ресурсы в обратном порядке (LIFO).
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	resources     []resource
	forcedTimeout time.Duration
}

// NewCloser создает новый экземпляр Closer.
// forcedTimeout — время на принудительное закрытие оставшихся ресурсов, если контекст Close истёк.
func NewCloser(forcedTimeout time.Duration) *Closer {
	const defaultForcedTimeout = 2 * time.Second

	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{forcedTimeout: forcedTimeout}
}

// Add регистрирует ресурс под именем name.
func (c *Closer) Add(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources = append(c.resources, resource{name: name, fn: f})
}

// AddFunc регистрирует ресурс без контекста и без ошибки, например pgxpool.Pool.Close.
func (c *Closer) AddFunc(name string, f func()) {
	c.Add(name, func(context.Context) error {
		f()
		return nil
	})
}

// Close закрывает ресурсы по одному в порядке LIFO. Если ctx истекает раньше,
// оставшиеся ресурсы закрываются параллельно с собственным таймаутом.
// Повторные вызовы ничего не делают.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		resources := make([]resource, len(c.resources))
		copy(resources, c.resources)
		c.mu.Unlock()

		var errs []error
		for i := len(resources) - 1; i >= 0; i-- {
			res := resources[i]
			done := make(chan error, 1)
			go func() { done <- res.fn(ctx) }()

			select {
			case closeErr := <-done:
				if closeErr != nil {
					errs = append(errs, fmt.Errorf("%s: %w", res.name, closeErr))
				}
			case <-ctx.Done():
				errs = append(errs, c.forceClose(resources[:i+1])...)
				err = fmt.Errorf("shutdown interrupted: %w", errors.Join(errs...))
				return
			}
		}

		err = errors.Join(errs...)
	})

	return err
}

func (c *Closer) forceClose(resources []resource) []error {
	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, res := range resources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := res.fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s (forced): %w", res.name, err))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return errs
}
