package internal

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aileon/awesome/pkg/logger"
)

const defaultAddress = ":9000"

// server couples an http.Server with the run options that govern its
// lifecycle.
type server struct {
	srv *http.Server
	cfg *runConfig
	log *slog.Logger
}

func newServer(addr string, h http.Handler, cfg *runConfig) *server {
	if addr == "" {
		addr = defaultAddress
	}
	log := cfg.logger
	if log == nil {
		log = logger.NewNope()
	}
	return &server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           h,
			ReadTimeout:       defaultReadTimeout,
			WriteTimeout:      defaultWriteTimeout,
			IdleTimeout:       defaultIdleTimeout,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			MaxHeaderBytes:    defaultMaxHeaderBytes,
			ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		},
		cfg: cfg,
		log: log,
	}
}

// run listens and serves until the base context is cancelled, a signal
// arrives or serving fails. On the way out it drains open connections and
// runs the shutdown hooks.
func (s *server) run() error {
	base := s.cfg.baseCtx
	if base == nil {
		base = context.Background()
	}
	sigCtx, stop := signal.NotifyContext(base, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	if s.cfg.ready != nil {
		s.cfg.ready(ln.Addr())
	}

	g, ctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		s.log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return s.drain()
	})
	return g.Wait()
}

// drain stops accepting requests, waits for in-flight ones and then runs
// every shutdown hook, all within the shutdown timeout.
func (s *server) drain() error {
	s.log.Info("shutting down server")
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.shutdownTimeout)
	defer cancel()

	errs := []error{s.srv.Shutdown(ctx)}
	for _, hook := range s.cfg.shutdownHooks {
		if err := hook(ctx); err != nil {
			s.log.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	s.log.Info("shutdown completed", slog.Duration("took", time.Since(start)))
	return nil
}
