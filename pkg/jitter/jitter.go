// Package jitter добавляет случайность в интервалы повторных попыток,
// чтобы несколько экземпляров сервиса не переподключались одновременно.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

// Duration возвращает d с джиттером в диапазоне [d, d*(1+factor)).
func Duration(d time.Duration, factor float64) time.Duration {
	if d <= 0 || factor <= 0 {
		return d
	}
	return d + time.Duration(rand.Float64()*factor*float64(d))
}

// ExponentialBackoff удваивает base на каждую попытку (attempt с нуля),
// ограничивает результат значением limit и добавляет джиттер.
func ExponentialBackoff(base, limit time.Duration, attempt int, factor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt && backoff < limit; i++ {
		backoff *= 2
	}
	if backoff > limit {
		backoff = limit
	}
	return Duration(backoff, factor)
}
