package graph

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DocumentRecord is the slice of a stored paper the builder consumes.
// Everything else a document carries (files, comments, permissions)
// stays in the storage layer.
type DocumentRecord struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	PublishedAt string   `json:"published_at"`
	Summary     string   `json:"summary"`
	Authors     []string `json:"authors"`
	Institute   string   `json:"institute"`
	KeyConcepts []string `json:"key_concepts"`
	Methods     []string `json:"methods"`
}

// Base weights per node group. Re-adds increment by one on top.
const (
	basePaperWeight     = 10
	baseAuthorWeight    = 5
	baseInstituteWeight = 6
	baseConceptWeight   = 3
	baseMethodWeight    = 3
)

// Per-document caps on concept and method nodes, applied in input order.
const (
	maxConceptsPerDoc = 5
	maxMethodsPerDoc  = 3
)

// Build projects a list of document records into a fresh deduplicated
// graph. The projection is deterministic: document order affects only
// when merge increments land, never the final node/edge set or weights.
// Malformed records (nil slices, blank names) contribute fewer nodes
// and edges instead of failing.
func Build(docs []DocumentRecord) *Graph {
	g := New()

	for _, doc := range docs {
		paperID := "paper:" + doc.ID
		g.AddNode(paperID, doc.Title, GroupPaper, basePaperWeight, &PaperMeta{
			Title:   doc.Title,
			Date:    doc.PublishedAt,
			Summary: doc.Summary,
			DocID:   doc.ID,
		})

		authorIDs := make([]string, 0, len(doc.Authors))
		for _, author := range doc.Authors {
			name := strings.TrimSpace(author)
			if name == "" {
				continue
			}
			authorID := "author:" + name
			g.AddNode(authorID, name, GroupAuthor, baseAuthorWeight, nil)
			g.AddEdge(paperID, authorID, "written_by")
			authorIDs = append(authorIDs, authorID)
		}

		if institute := strings.TrimSpace(doc.Institute); institute != "" {
			instID := "inst:" + institute
			g.AddNode(instID, institute, GroupInstitute, baseInstituteWeight, nil)
			g.AddEdge(paperID, instID, "published_at")

			// Re-attempted for every co-authored paper; the edge dedup
			// keeps exactly one affiliation edge per author/institute pair.
			for _, authorID := range authorIDs {
				g.AddEdge(authorID, instID, "affiliated_with")
			}
		}

		for i, concept := range doc.KeyConcepts {
			if i >= maxConceptsPerDoc {
				break
			}
			key := strings.ToLower(strings.TrimSpace(concept))
			if key == "" {
				continue
			}
			conceptID := "concept:" + key
			g.AddNode(conceptID, capitalizeFirst(key), GroupConcept, baseConceptWeight, nil)
			g.AddEdge(paperID, conceptID, "discusses")
		}

		for i, method := range doc.Methods {
			if i >= maxMethodsPerDoc {
				break
			}
			key := strings.ToLower(strings.TrimSpace(method))
			if key == "" {
				continue
			}
			methodID := "method:" + key
			g.AddNode(methodID, capitalizeFirst(key), GroupMethod, baseMethodWeight, nil)
			g.AddEdge(paperID, methodID, "uses_method")
		}
	}

	return g
}

// capitalizeFirst upper-cases the first rune only, leaving the rest of
// the string untouched. This is intentionally not title case.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
