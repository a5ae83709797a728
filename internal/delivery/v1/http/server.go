package http

import (
	"context"
	"net"
	"net/http"

	"github.com/DRSN-tech/stock-backend/internal/cfg"
)

const maxHeaderBytes = 1 << 16

type Server struct {
	httpServer *http.Server
}

func NewServer(handler http.Handler, cfg *cfg.HTTPConfig) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			MaxHeaderBytes:    maxHeaderBytes,
		},
	}
}

// Run слушает порт из конфигурации. После Stop возвращает http.ErrServerClosed.
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Serve обслуживает уже открытый listener.
func (s *Server) Serve(lis net.Listener) error {
	return s.httpServer.Serve(lis)
}

// Stop дожидается завершения активных запросов, пока не истечёт ctx.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
