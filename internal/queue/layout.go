package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"paperatlas/internal/util"
	"paperatlas/pkg/graph"
	"paperatlas/pkg/layout"
	"paperatlas/pkg/logger"
	"paperatlas/pkg/store"
	"paperatlas/pkg/view"
)

// LayoutJobMsg is the payload published to layout_queue. One message
// can request layouts for several projects; they are computed
// concurrently.
type LayoutJobMsg struct {
	CorrelationID string  `json:"correlation_id"`
	ProjectIDs    []int64 `json:"project_ids"`
	Width         float64 `json:"width,omitempty"`
	Height        float64 `json:"height,omitempty"`
	MaxTicks      int     `json:"max_ticks,omitempty"`
}

const (
	defaultLayoutWidth  = 1600
	defaultLayoutHeight = 900
	defaultMaxTicks     = 500

	maxParallelLayouts = 4
	saveRetries        = 3
)

// ProcessLayoutMessage handles one layout job: for every requested
// project it loads the documents, builds the graph, runs the simulation
// until it settles (or the tick cap is hit) and persists the resulting
// positions. A returned error sends the message down the retry path.
func ProcessLayoutMessage(ctx context.Context, storage store.DocumentStorage, msg string) error {
	data := new(LayoutJobMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return fmt.Errorf("unmarshal layout job: %w", err)
	}
	if len(data.ProjectIDs) == 0 {
		logger.Warn("[Queue] Layout job without project ids", "correlation_id", data.CorrelationID)
		return nil
	}

	if data.Width <= 0 {
		data.Width = defaultLayoutWidth
	}
	if data.Height <= 0 {
		data.Height = defaultLayoutHeight
	}
	if data.MaxTicks <= 0 {
		data.MaxTicks = defaultMaxTicks
	}

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelLayouts)
	for _, projectID := range data.ProjectIDs {
		projectID := projectID
		eg.Go(func() error {
			return computeProjectLayout(ectx, storage, data, projectID)
		})
	}
	return eg.Wait()
}

func computeProjectLayout(
	ctx context.Context,
	storage store.DocumentStorage,
	job *LayoutJobMsg,
	projectID int64,
) error {
	start := time.Now()

	docs, err := storage.GetProjectDocuments(ctx, projectID)
	if err != nil {
		return fmt.Errorf("load documents for project %d: %w", projectID, err)
	}

	g := graph.Build(docs)
	sim := layout.New(g, layout.Config{
		Width:  job.Width,
		Height: job.Height,
		Radius: view.Radius,
	})
	ticks := layout.RunToSettle(ctx, sim, job.MaxTicks)
	if err := ctx.Err(); err != nil {
		return err
	}

	positions := make([]store.NodePosition, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		positions = append(positions, store.NodePosition{
			NodeID: n.ID,
			X:      n.X,
			Y:      n.Y,
		})
	}

	err = util.RetryErrWithContext(ctx, saveRetries, func(ctx context.Context) error {
		return storage.SaveLayout(ctx, projectID, positions)
	})
	if err != nil {
		return fmt.Errorf("save layout for project %d: %w", projectID, err)
	}

	logger.Info(
		"[Queue] Layout computed",
		"correlation_id", job.CorrelationID,
		"project_id", projectID,
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"ticks", ticks,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
