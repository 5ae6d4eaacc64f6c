package store

import (
	"context"

	"paperatlas/pkg/graph"
)

// NodePosition is one persisted layout coordinate, keyed by the node id
// the graph builder assigns.
type NodePosition struct {
	NodeID string  `json:"node_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// DocumentStorage defines the interface for loading the paper records a
// graph is built from and for persisting computed layouts. The HTTP
// handlers and the layout worker both consume it; the pgx subpackage is
// the production implementation.
type DocumentStorage interface {
	GetProjectDocuments(ctx context.Context, projectID int64) ([]graph.DocumentRecord, error)
	GetDocument(ctx context.Context, docID string) (*graph.DocumentRecord, error)

	SaveLayout(ctx context.Context, projectID int64, positions []NodePosition) error
	GetLayout(ctx context.Context, projectID int64) ([]NodePosition, error)
}
