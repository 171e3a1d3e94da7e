package rebinder

import (
	"expvar"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Read/Write timeout in the admin server
const adminServerTimeout = 10 * time.Second

// AdminListener serves the metrics of all listeners and services over HTTP.
type AdminListener struct {
	httpServer *http.Server

	id   string
	addr string
}

var _ Listener = &AdminListener{}

// NewAdminListener returns an instance of an admin service listener.
func NewAdminListener(id, addr string) *AdminListener {
	mux := http.NewServeMux()
	mux.Handle("/rebinder/vars", expvar.Handler())
	return &AdminListener{
		id:   id,
		addr: addr,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  adminServerTimeout,
			WriteTimeout: adminServerTimeout,
		},
	}
}

// Start the admin server.
func (s *AdminListener) Start() error {
	Log.WithFields(logrus.Fields{
		"id":       s.id,
		"protocol": "http",
		"addr":     s.addr,
	}).Info("starting listener")
	if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop the admin server.
func (s *AdminListener) Stop() error {
	return s.httpServer.Close()
}

func (s *AdminListener) String() string {
	return s.id
}
