package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/unrolled/render"

	"github.com/Emazov/myach-pro-tier-list-backend/controller"
)

type Server struct {
	server *http.Server
}

func NewServer(port int, ctrl controller.C) (*Server, error) {
	render := newRender()
	router := getRouter(ctrl, render)

	s := &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			log.Fatalf("fatal error shutting down server: %v", err)
		}
	}()

	log.Printf("web server is listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatalf("fatal error with server: %v", err)
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		IndentJSON: true,
	})
}
