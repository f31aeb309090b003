package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Serve starts an HTTP server exposing c's registry at addr+path and runs
// it until ctx is canceled, logging a warning rather than failing the
// caller's startup sequence if the listener can't be opened: metrics are an
// observability aid, not a correctness requirement for the worker.
func Serve(ctx context.Context, addr, path string, c *Collector, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle(path, c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Str("path", path).Msg("metrics server starting")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn().Err(err).Msg("metrics server stopped")
	}
}

// Addr formats a host/port pair into a net/http listen address.
func Addr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
