package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"refl/qgrid"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	calc     Evaluator
	grid     qgrid.Grid // initial grid of every new connection
}

func NewServer(addr string, upgrader websocket.Upgrader, calc Evaluator, grid qgrid.Grid) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		calc:     calc,
		grid:     grid,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	hub := NewHub(s.calc, s.grid)
	go hub.handleRequest(ctx)
	go hub.handleResponse(ctx, conn)

	logger := log.WithField("remote", r.RemoteAddr)
	logger.Info("client connected")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.WithError(err).Warn("read failed")
			}
			break
		}

		var req request
		if err := json.Unmarshal(data, &req.msg); err != nil {
			logger.WithError(err).Warn("malformed message")
			req.err = fmt.Errorf("decode message: %w", err)
		}
		select {
		case hub.msg <- req:
			continue
		case <-hub.done:
		case <-hub.written:
		case <-ctx.Done():
		}
		break
	}
	logger.Info("client disconnected")
}

// Serve listens until ctx is done, then shuts the listener down.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.WithField("addr", s.addr).Info("listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
