package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/DRSN-tech/stock-backend/internal/usecase"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/DRSN-tech/stock-backend/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
	maxIdempotencyKeyLen = 128
)

// Idempotency защищает запросы записи от повторной отправки формы.
// Первый запрос с ключом резервирует его и выполняется, ответ сохраняется.
// Повтор получает сохранённый ответ, а пока первый ещё выполняется — 409.
// При недоступности хранилища запрос выполняется без защиты.
func Idempotency(store usecase.IdempotencyRepository, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyKeyHeader)
			if key == "" || store == nil {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxIdempotencyKeyLen {
				WriteError(w, e.Wrap(IdempotencyKeyHeader, e.ErrStatusBadRequest))
				return
			}

			// Ключ общий для всех маршрутов, поэтому привязываем его к методу и пути.
			scoped := r.Method + " " + r.URL.Path + " " + key

			reserved, err := store.Reserve(r.Context(), scoped)
			if err != nil {
				log.Warnf("idempotency store unavailable, serving %s without protection: %s", r.URL.Path, err.Error())
				next.ServeHTTP(w, r)
				return
			}

			if !reserved {
				replay(w, r, store, scoped, log, next)
				return
			}

			// Запрос мог быть отменён клиентом, а ответ сохранить всё равно нужно.
			ctx := context.WithoutCancel(r.Context())

			// Паника обработчика превращается в 500 выше по цепочке, ключ должен освободиться так же.
			defer func() {
				if rvr := recover(); rvr != nil {
					if err := store.Release(ctx, scoped); err != nil {
						log.Warnf("release idempotency key: %s", err.Error())
					}
					panic(rvr)
				}
			}()

			var body bytes.Buffer
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&body)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			if status >= http.StatusInternalServerError {
				if err := store.Release(ctx, scoped); err != nil {
					log.Warnf("release idempotency key: %s", err.Error())
				}
				return
			}

			resp := &usecase.StoredResponse{
				Status:      status,
				ContentType: ww.Header().Get("Content-Type"),
				Body:        body.Bytes(),
			}
			if err := store.Save(ctx, scoped, resp); err != nil {
				log.Warnf("save idempotent response: %s", err.Error())
			}
		})
	}
}

func replay(w http.ResponseWriter, r *http.Request, store usecase.IdempotencyRepository, key string, log logger.Logger, next http.Handler) {
	resp, err := store.Get(r.Context(), key)
	switch {
	case errors.Is(err, e.ErrSubmissionInProgress):
		log.Warnf("%d %s: %s", http.StatusConflict, err.Error(), r.URL.Path)
		WriteError(w, err)
		return
	case err != nil:
		log.Warnf("idempotency store unavailable, serving %s without protection: %s", r.URL.Path, err.Error())
		next.ServeHTTP(w, r)
		return
	case resp == nil:
		// Запись истекла между Reserve и Get.
		next.ServeHTTP(w, r)
		return
	}

	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.Header().Set(replayedHeader, "true")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}
