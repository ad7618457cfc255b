package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/config"
	"github.com/MKhiriev/expense-tracker/internal/handler"
	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHTTPServer blocks in RunServer until Shutdown is called or fail is
// closed.
type fakeHTTPServer struct {
	stop     chan struct{}
	fail     chan struct{}
	shutdown bool
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{stop: make(chan struct{}), fail: make(chan struct{})}
}

func (f *fakeHTTPServer) RunServer() {
	select {
	case <-f.stop:
	case <-f.fail:
	}
}

func (f *fakeHTTPServer) Shutdown() {
	f.shutdown = true
	close(f.stop)
}

type fakeWorkers struct {
	stopped chan struct{}
}

func (f *fakeWorkers) Run(ctx context.Context) {
	<-ctx.Done()
	close(f.stopped)
}

func runAsync(s *server, ctx context.Context) chan error {
	result := make(chan error, 1)
	go func() { result <- s.run(ctx) }()
	return result
}

func TestServer_Run_GracefulShutdown(t *testing.T) {
	httpSrv := newFakeHTTPServer()
	bg := &fakeWorkers{stopped: make(chan struct{})}
	s := &server{httpServer: httpSrv, workers: bg, logger: logger.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	result := runAsync(s, ctx)
	cancel()

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("run did not return after cancellation")
	}
	assert.True(t, httpSrv.shutdown)
	<-bg.stopped
}

func TestServer_Run_ListenerFailureStopsWorkers(t *testing.T) {
	httpSrv := newFakeHTTPServer()
	bg := &fakeWorkers{stopped: make(chan struct{})}
	s := &server{httpServer: httpSrv, workers: bg, logger: logger.Nop()}

	result := runAsync(s, context.Background())
	close(httpSrv.fail)

	select {
	case err := <-result:
		require.ErrorIs(t, err, errServerStopped)
	case <-time.After(time.Second):
		t.Fatal("run did not return after the listener failed")
	}
	assert.False(t, httpSrv.shutdown)
	<-bg.stopped
}

func TestServer_Run_WithoutWorkers(t *testing.T) {
	s := &server{httpServer: newFakeHTTPServer(), logger: logger.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, s.run(ctx))
}

func TestServer_Run_NoHTTPServer(t *testing.T) {
	s := &server{logger: logger.Nop()}
	assert.Error(t, s.run(context.Background()))
}

func TestNewServer(t *testing.T) {
	cfg := &config.StructuredConfig{
		Server: config.Server{HTTPAddress: "localhost:0", RequestTimeout: time.Second},
		App:    config.App{Env: config.EnvProduction, ResetTicketSignKey: "key"},
	}
	handlers, err := handler.NewHandlers(&service.Services{}, cfg, logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, nil, cfg.Server, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, srv)

	s := srv.(*server)
	assert.Nil(t, s.workers)

	_, err = NewServer(nil, nil, cfg.Server, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)

	_, err = NewServer(handlers, nil, config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestHTTPServer_ServesRouter(t *testing.T) {
	router := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	srv := newHTTPServer(router, config.Server{HTTPAddress: "localhost:0", RequestTimeout: time.Second}, logger.Nop())

	assert.Equal(t, 6*time.Second, srv.server.WriteTimeout)
	assert.Equal(t, readHeaderTimeout, srv.server.ReadHeaderTimeout)

	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
