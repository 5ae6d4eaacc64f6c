package routes

import (
	"testing"
	"time"

	"paperatlas/pkg/graph"
)

func TestSelectionSurvivesFrameBurst(t *testing.T) {
	outbound := make(chan sessionMessage, 16)
	for i := 0; i < cap(outbound); i++ {
		outbound <- sessionMessage{Type: "frame"}
	}

	delivered := make(chan bool, 1)
	go func() {
		delivered <- enqueueSelection(outbound, &graph.Node{ID: "paper:1"})
	}()

	// Drain like the writer goroutine would: the selection must queue
	// behind the frame backlog instead of being dropped.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-outbound:
			if msg.Type != "selected" {
				continue
			}
			if msg.Node == nil || msg.Node.ID != "paper:1" {
				t.Fatalf("selection payload = %+v, want node paper:1", msg.Node)
			}
			if ok := <-delivered; !ok {
				t.Error("send reported dropped after the writer drained")
			}
			return
		case <-deadline:
			t.Fatal("selection never arrived behind the frame backlog")
		}
	}
}

func TestSelectionGivesUpWithoutWriter(t *testing.T) {
	outbound := make(chan sessionMessage, 1)
	outbound <- sessionMessage{Type: "frame"}

	done := make(chan bool, 1)
	go func() {
		done <- enqueueSelection(outbound, &graph.Node{ID: "paper:1"})
	}()

	select {
	case ok := <-done:
		if ok {
			t.Error("send reported delivered with nobody draining")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("selection send hung with nobody draining")
	}
}
