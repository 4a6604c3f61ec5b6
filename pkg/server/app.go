package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	xhttp "QuotePull/pkg/http"
	applogger "QuotePull/pkg/logger"
)

type janitor struct {
	every time.Duration
	fn    func()
}

// App encapsulates the entire application lifecycle.
type App struct {
	httpServer *xhttp.Server
	log        *applogger.Logger
	janitors   []janitor
}

// New creates a new App instance with all dependencies.
func New(srv *xhttp.Server, l *applogger.Logger) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{httpServer: srv, log: l}
}

// AddJanitor runs fn every interval while the app is running.
func (a *App) AddJanitor(every time.Duration, fn func()) {
	a.janitors = append(a.janitors, janitor{every: every, fn: fn})
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the application and blocks until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	var wg sync.WaitGroup
	for _, j := range a.janitors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t := time.NewTicker(j.every)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					j.fn()
				}
			}
		}()
	}

	<-ctx.Done()
	a.log.Info("shutdown signal received")

	err := a.shutdown()
	wg.Wait()
	return err
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.log.Info("shutting down...")

	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		return err
	}

	a.log.Info("shutdown complete")
	return nil
}
