package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"refl/calculator"
	"refl/model"
	"refl/qgrid"
	"refl/sample"
)

// Evaluator is the forward model a hub evaluates curves with.
type Evaluator interface {
	Reflectivity(ctx context.Context, q []float64, beta []complex128, d []float64) ([]float64, error)
}

var errNoStack = errors.New("no stack set")

// request is one frame from the client; err is set when it did not decode.
type request struct {
	msg model.Msg
	err error
}

// Hub holds the state of one connection: the stack and grid the client has
// set so far. Requests are handled one at a time in arrival order.
type Hub struct {
	calc  Evaluator
	stack *sample.Stack
	grid  qgrid.Grid

	// request
	msg chan request
	// response
	reply chan model.Msg
	// closed once the request loop has stopped
	done chan struct{}
	// closed once the writer has stopped
	written chan struct{}
}

func NewHub(calc Evaluator, grid qgrid.Grid) *Hub {
	return &Hub{
		calc:    calc,
		grid:    grid,
		msg:     make(chan request, 10),
		reply:   make(chan model.Msg, 10),
		done:    make(chan struct{}),
		written: make(chan struct{}),
	}
}

func errorMsg(err error) model.Msg {
	return model.Msg{Type: model.TypeError, Content: err.Error()}
}

func (h *Hub) handleRequest(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case req := <-h.msg:
			var reply model.Msg
			var stop bool
			if req.err != nil {
				reply = errorMsg(req.err)
			} else {
				reply, stop = h.handle(ctx, req.msg)
			}
			select {
			case h.reply <- reply:
			case <-h.written:
				return
			case <-ctx.Done():
				return
			}
			if stop {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// handleResponse is the only writer on conn.
func (h *Hub) handleResponse(ctx context.Context, conn *websocket.Conn) {
	defer close(h.written)
	for {
		select {
		case reply := <-h.reply:
			if err := conn.WriteJSON(&reply); err != nil {
				log.WithError(err).Warn("write failed")
				return
			}
			if reply.Type == model.TypeStopped {
				closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "stopped")
				if err := conn.WriteControl(websocket.CloseMessage, closing, time.Now().Add(time.Second)); err != nil {
					log.WithError(err).Debug("close frame not sent")
				}
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// handle answers one request. stop reports that the client asked to end
// the session.
func (h *Hub) handle(ctx context.Context, msg model.Msg) (reply model.Msg, stop bool) {
	switch msg.Type {
	case model.TypeStack:
		s, err := sample.DecodeJSON([]byte(msg.Content))
		if err != nil {
			return errorMsg(fmt.Errorf("decode stack: %w", err)), false
		}
		h.stack = &s
		log.WithFields(log.Fields{
			"name":   s.Name,
			"layers": len(s.Layers),
		}).Info("stack set")
		return model.Msg{Type: model.TypeStackSet, Content: "stack is set"}, false

	case model.TypeGrid:
		g := h.grid
		if err := json.Unmarshal([]byte(msg.Content), &g); err != nil {
			return errorMsg(fmt.Errorf("decode grid: %w", err)), false
		}
		if g.Spacing == "" {
			g.Spacing = qgrid.Linear
		}
		if err := g.Validate(); err != nil {
			return errorMsg(err), false
		}
		h.grid = g
		log.WithFields(log.Fields{
			"min":     g.Min,
			"max":     g.Max,
			"points":  g.Points,
			"spacing": g.Spacing,
		}).Info("grid set")
		return model.Msg{Type: model.TypeGridSet, Content: "grid is set"}, false

	case model.TypeStart:
		curve, err := h.evaluate(ctx, msg.Content)
		if err != nil {
			return errorMsg(err), false
		}
		data, err := json.Marshal(curve)
		if err != nil {
			return errorMsg(err), false
		}
		return model.Msg{Type: model.TypeCurve, Content: string(data)}, false

	case model.TypeStop:
		return model.Msg{Type: model.TypeStopped, Content: "stopped"}, true

	default:
		log.WithField("type", msg.Type).Warn("no such type")
		return errorMsg(fmt.Errorf("no such type %q", msg.Type)), false
	}
}

func (h *Hub) evaluate(ctx context.Context, content string) (model.Curve, error) {
	var opts model.Start
	if content != "" {
		if err := json.Unmarshal([]byte(content), &opts); err != nil {
			return model.Curve{}, fmt.Errorf("decode start: %w", err)
		}
	}
	if h.stack == nil {
		return model.Curve{}, errNoStack
	}
	q, err := h.grid.Values()
	if err != nil {
		return model.Curve{}, err
	}
	beta, d := h.stack.Beta(), h.stack.Thickness()

	start := time.Now()
	r, err := h.calc.Reflectivity(ctx, q, beta, d)
	if err != nil {
		return model.Curve{}, err
	}
	curve := model.Curve{Q: q, R: r}
	if opts.Kinematic {
		if curve.Kinematic, err = calculator.Kinematic(q, beta, d); err != nil {
			return model.Curve{}, err
		}
	}
	log.WithFields(log.Fields{
		"points":  len(q),
		"layers":  len(beta),
		"elapsed": time.Since(start),
	}).Info("curve evaluated")
	return curve, nil
}
