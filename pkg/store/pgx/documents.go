package pgx

import (
	"context"
	"errors"
	"fmt"

	pgxv5 "github.com/jackc/pgx/v5"

	"paperatlas/pkg/graph"
	"paperatlas/pkg/logger"
)

const selectPapers = `
SELECT id, public_id, title, COALESCE(published_at, ''), COALESCE(summary, ''), COALESCE(institute, '')
FROM papers
WHERE project_id = $1
ORDER BY id`

const selectPaperByPublicID = `
SELECT id, public_id, title, COALESCE(published_at, ''), COALESCE(summary, ''), COALESCE(institute, '')
FROM papers
WHERE public_id = $1`

// GetProjectDocuments loads every paper record of a project, with its
// ordered author, concept and method lists. Order is stable (insertion
// order of the papers, stored position within each list) so the graph
// builder's output is deterministic for a given project state.
func (s *DocumentDBStorage) GetProjectDocuments(ctx context.Context, projectID int64) ([]graph.DocumentRecord, error) {
	rows, err := s.conn.Query(ctx, selectPapers, projectID)
	if err != nil {
		return nil, fmt.Errorf("query papers: %w", err)
	}
	defer rows.Close()

	var ids []int64
	var docs []graph.DocumentRecord
	indexByID := make(map[int64]int)
	for rows.Next() {
		var id int64
		var doc graph.DocumentRecord
		if err := rows.Scan(&id, &doc.ID, &doc.Title, &doc.PublishedAt, &doc.Summary, &doc.Institute); err != nil {
			return nil, fmt.Errorf("scan paper: %w", err)
		}
		indexByID[id] = len(docs)
		ids = append(ids, id)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return docs, nil
	}

	if err := s.fillLists(ctx, ids, indexByID, docs); err != nil {
		return nil, err
	}

	logger.Debug("[Store] Loaded project documents", "project_id", projectID, "papers", len(docs))
	return docs, nil
}

// GetDocument loads a single paper record by its public id. A missing
// document yields (nil, nil).
func (s *DocumentDBStorage) GetDocument(ctx context.Context, docID string) (*graph.DocumentRecord, error) {
	var id int64
	var doc graph.DocumentRecord
	err := s.conn.QueryRow(ctx, selectPaperByPublicID, docID).
		Scan(&id, &doc.ID, &doc.Title, &doc.PublishedAt, &doc.Summary, &doc.Institute)
	if errors.Is(err, pgxv5.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query paper %s: %w", docID, err)
	}

	docs := []graph.DocumentRecord{doc}
	if err := s.fillLists(ctx, []int64{id}, map[int64]int{id: 0}, docs); err != nil {
		return nil, err
	}
	return &docs[0], nil
}

// fillLists attaches the ordered name lists of the given papers to the
// matching document records in place.
func (s *DocumentDBStorage) fillLists(
	ctx context.Context,
	ids []int64,
	indexByID map[int64]int,
	docs []graph.DocumentRecord,
) error {
	lists := []struct {
		table  string
		assign func(doc *graph.DocumentRecord, name string)
	}{
		{"paper_authors", func(doc *graph.DocumentRecord, name string) { doc.Authors = append(doc.Authors, name) }},
		{"paper_concepts", func(doc *graph.DocumentRecord, name string) { doc.KeyConcepts = append(doc.KeyConcepts, name) }},
		{"paper_methods", func(doc *graph.DocumentRecord, name string) { doc.Methods = append(doc.Methods, name) }},
	}

	for _, list := range lists {
		query := fmt.Sprintf(
			`SELECT paper_id, name FROM %s WHERE paper_id = ANY($1) ORDER BY paper_id, position`,
			list.table,
		)
		rows, err := s.conn.Query(ctx, query, ids)
		if err != nil {
			return fmt.Errorf("query %s: %w", list.table, err)
		}
		for rows.Next() {
			var paperID int64
			var name string
			if err := rows.Scan(&paperID, &name); err != nil {
				rows.Close()
				return fmt.Errorf("scan %s: %w", list.table, err)
			}
			if idx, ok := indexByID[paperID]; ok {
				list.assign(&docs[idx], name)
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
	}
	return nil
}
