package routes

import (
	"net/http"
	"time"

	"paperatlas/internal/server/middleware"
	"paperatlas/pkg/graph"
	"paperatlas/pkg/logger"
	"paperatlas/pkg/view"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// pointerEvent is one inbound interaction message from the client.
type pointerEvent struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Factor float64 `json:"factor"`
	Groups string  `json:"groups"`
}

// sessionMessage is one outbound message: either a render frame or a
// node-click selection.
type sessionMessage struct {
	Type  string      `json:"type"`
	Frame *view.Frame `json:"frame,omitempty"`
	Node  *graph.Node `json:"node,omitempty"`
}

const (
	sessionWidth  = 1600
	sessionHeight = 900

	// selectionSendTimeout bounds how long a click result may wait on a
	// congested writer before the session gives it up.
	selectionSendTimeout = time.Second
)

// enqueueSelection delivers a node selection to the writer goroutine.
// Unlike frames, selections are not droppable: a burst of frames must
// not swallow the click, so the send waits for a slot and gives up only
// when the writer stopped draining. Reports whether the message was
// enqueued.
func enqueueSelection(outbound chan<- sessionMessage, n *graph.Node) bool {
	timer := time.NewTimer(selectionSendTimeout)
	defer timer.Stop()
	select {
	case outbound <- sessionMessage{Type: "selected", Node: n}:
		return true
	case <-timer.C:
		return false
	}
}

// GraphSessionHandler runs one interactive layout session over a
// websocket: the simulation streams frames down while pointer events
// (pan, zoom, drag, click, group filtering) come up. Disconnecting
// disposes the session and its tick scheduler.
func GraphSessionHandler(c echo.Context) error {
	type graphSessionParams struct {
		ProjectID int64 `param:"id" validate:"required,numeric"`
	}

	params := new(graphSessionParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	docs, err := app.Storage.GetProjectDocuments(ctx, params.ProjectID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	full := graph.Build(docs)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// The websocket allows one concurrent writer, so every outbound
	// message funnels through this channel. Frame sends never block:
	// when the client cannot keep up, stale frames are dropped.
	// Selections go through enqueueSelection and wait for a slot.
	outbound := make(chan sessionMessage, 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range outbound {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}()

	v := view.New(view.Config{
		Width:  sessionWidth,
		Height: sessionHeight,
		OnFrame: func(f view.Frame) {
			select {
			case outbound <- sessionMessage{Type: "frame", Frame: &f}:
			default:
			}
		},
		OnNodeClick: func(n *graph.Node) {
			enqueueSelection(outbound, n)
		},
	})
	v.SetGraph(full)

	logger.Info("[Server] Graph session opened", "project_id", params.ProjectID, "nodes", len(full.Nodes))

	for {
		ev := new(pointerEvent)
		if err := conn.ReadJSON(ev); err != nil {
			break
		}

		switch ev.Type {
		case "pan":
			v.Pan(ev.DX, ev.DY)
		case "zoom":
			v.Zoom(ev.Factor, ev.X, ev.Y)
		case "click":
			v.Click(ev.X, ev.Y)
		case "drag_start":
			v.DragStart(ev.X, ev.Y)
		case "drag_move":
			v.DragMove(ev.X, ev.Y)
		case "drag_end":
			v.DragEnd()
		case "groups":
			enabled, err := parseGroupFilter(ev.Groups)
			if err != nil {
				continue
			}
			if enabled == nil {
				v.SetGraph(graph.Build(docs))
			} else {
				v.SetGraph(graph.FilterGroups(graph.Build(docs), enabled))
			}
		}
	}

	// Dispose before closing the outbound channel: Close waits for the
	// tick loop, so no frame is published into a closed channel.
	v.Close()
	close(outbound)
	<-writerDone

	logger.Info("[Server] Graph session closed", "project_id", params.ProjectID)
	return nil
}
