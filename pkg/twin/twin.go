/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package twin is an in-memory stand in for the LPG Subsidy Portal API,
// reproducing its routes, data and error envelopes so a smoke run can be
// verified without the real deployment.
package twin

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/pflag"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

type Options struct {
	// FailStatus, when non-zero, answers every request with this status.
	FailStatus int

	// SessionTTL is how long a login token remains valid.
	SessionTTL time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.IntVar(&o.FailStatus, "fail-status", 0, "Answer every request with this HTTP status, 0 disables")
	f.DurationVar(&o.SessionTTL, "session-ttl", time.Hour, "Lifetime of login sessions")
	f.DurationVar(&o.ShutdownTimeout, "shutdown-timeout", 10*time.Second, "Time allowed for in flight requests on shutdown")
}

// Twin serves the portal API from an in-memory store.
type Twin struct {
	store      *Store
	router     chi.Router
	failStatus atomic.Int32
	options    Options
}

// New returns a twin seeded with the portal's reference data.
func New(options Options) (*Twin, error) {
	if options.SessionTTL <= 0 {
		options.SessionTTL = time.Hour
	}

	if options.ShutdownTimeout <= 0 {
		options.ShutdownTimeout = 10 * time.Second
	}

	sessions, err := NewSessions(options.SessionTTL)
	if err != nil {
		return nil, err
	}

	t := &Twin{
		store:   NewStore(),
		options: options,
	}

	t.SetFailStatus(options.FailStatus)

	handler, err := NewHandler(t.store, sessions)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger)
	router.Use(recoverer)
	router.Use(t.faultInjection)

	handler.Mount(router)

	t.router = router

	return t, nil
}

// Store exposes the twin's state.
func (t *Twin) Store() *Store {
	return t.store
}

// SetFailStatus switches fault mode at runtime, 0 restores normal service.
func (t *Twin) SetFailStatus(status int) {
	t.failStatus.Store(int32(status)) //nolint:gosec
}

func (t *Twin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t.router.ServeHTTP(w, r)
}

// Serve listens on the address until the context is cancelled, then drains
// in flight requests.
func (t *Twin) Serve(ctx context.Context, address string) error {
	log := log.FromContext(ctx)

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	server := &http.Server{
		Handler:           t,
		ReadHeaderTimeout: 30 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errs := make(chan error, 1)

	go func() {
		errs <- server.Serve(listener)
	}()

	log.Info("twin listening", "address", listener.Addr().String())

	select {
	case err := <-errs:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("twin shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.options.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// requestLogger attaches a request scoped logger and logs each exchange.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context()).WithValues("requestID", middleware.GetReqID(r.Context()))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(log.IntoContext(r.Context(), logger)))

		logger.V(1).Info("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start), "remote", r.RemoteAddr)
	})
}

// recoverer turns a handler panic into the portal's internal error envelope.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			//nolint:errorlint,err113
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			log.FromContext(r.Context()).Error(fmt.Errorf("%v", recovered), "handler panicked", "path", r.URL.Path)

			writeError(w, http.StatusInternalServerError, messageInternalError)
		}()

		next.ServeHTTP(w, r)
	})
}

func (t *Twin) faultInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status := int(t.failStatus.Load()); status != 0 {
			writeError(w, status, messageInternalError)
			return
		}

		next.ServeHTTP(w, r)
	})
}
