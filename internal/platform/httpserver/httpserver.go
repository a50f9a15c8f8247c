package httpserver

import (
	"log/slog"
	"net/http"
	"time"
)

// New builds an HTTP server with sane defaults for this project. Errors the
// server cannot hand to a handler (TLS handshakes, malformed requests) go to
// logger at error level.
func New(addr string, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}
