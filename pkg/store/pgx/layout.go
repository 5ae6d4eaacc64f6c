package pgx

import (
	"context"
	"fmt"

	"paperatlas/pkg/logger"
	"paperatlas/pkg/store"
)

// SaveLayout replaces the persisted layout of a project with the given
// positions, in one transaction per chunk. The worker calls this after
// a simulation settles; an empty slice clears the stored layout.
func (s *DocumentDBStorage) SaveLayout(ctx context.Context, projectID int64, positions []store.NodePosition) error {
	logger.Debug("[Store] Saving layout", "project_id", projectID, "positions", len(positions))

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM graph_layouts WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("clear layout: %w", err)
	}

	err = store.ChunkRange(len(positions), 1000, func(start, end int) error {
		count := end - start
		nodeIDs := make([]string, 0, count)
		xs := make([]float64, 0, count)
		ys := make([]float64, 0, count)
		for _, pos := range positions[start:end] {
			nodeIDs = append(nodeIDs, pos.NodeID)
			xs = append(xs, pos.X)
			ys = append(ys, pos.Y)
		}

		_, err := tx.Exec(ctx, `
INSERT INTO graph_layouts (project_id, node_id, x, y)
SELECT $1, unnest($2::text[]), unnest($3::float8[]), unnest($4::float8[])`,
			projectID, nodeIDs, xs, ys,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert layout: %w", err)
	}

	return tx.Commit(ctx)
}

// GetLayout returns the persisted layout of a project, empty when none
// has been computed yet.
func (s *DocumentDBStorage) GetLayout(ctx context.Context, projectID int64) ([]store.NodePosition, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT node_id, x, y FROM graph_layouts WHERE project_id = $1 ORDER BY node_id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("query layout: %w", err)
	}
	defer rows.Close()

	positions := make([]store.NodePosition, 0)
	for rows.Next() {
		var pos store.NodePosition
		if err := rows.Scan(&pos.NodeID, &pos.X, &pos.Y); err != nil {
			return nil, fmt.Errorf("scan layout: %w", err)
		}
		positions = append(positions, pos)
	}
	return positions, rows.Err()
}
