package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/philippgille/chromem-go"

	"github.com/wanderkit/wanderkit/components/systemprompt"
)

const collectionName = "destination-notes"

// Note is a single destination planning note.
type Note struct {
	ID          string
	Destination string
	Content     string
}

type Config struct {
	embeddingFunc chromem.EmbeddingFunc
}

// Store keeps destination notes in an in-process vector database and
// retrieves the ones relevant to a trip's interests.
type Store struct {
	Config
	collection *chromem.Collection
}

// New returns a new Store. Without options the default chromem embedding
// model is used; point it at an OpenAI-compatible endpoint with
// WithOpenAICompat.
func New(opts ...Option) (*Store, error) {
	ret := new(Store)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	db := chromem.NewDB()
	collection, err := db.CreateCollection(collectionName, nil, ret.embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("create notes collection: %w", err)
	}
	ret.collection = collection
	return ret, nil
}

// Add stores notes in the vector database.
func (s *Store) Add(ctx context.Context, notes ...Note) error {
	docs := make([]chromem.Document, 0, len(notes))
	for _, n := range notes {
		docs = append(docs, chromem.Document{
			ID:       n.ID,
			Content:  n.Content,
			Metadata: map[string]string{"destination": n.Destination},
		})
	}
	if len(docs) == 0 {
		return nil
	}
	return s.collection.AddDocuments(ctx, docs, 1)
}

// Count returns the number of stored notes.
func (s *Store) Count() int {
	return s.collection.Count()
}

// Retrieve returns up to k notes relevant to the query, optionally
// filtered by destination.
func (s *Store) Retrieve(ctx context.Context, query, destination string, k int) ([]Note, error) {
	if n := s.collection.Count(); n == 0 {
		return nil, nil
	} else if k > n {
		k = n
	}
	var where map[string]string
	if destination != "" {
		where = map[string]string{"destination": destination}
	}
	results, err := s.collection.Query(ctx, query, k, where, nil)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	notes := make([]Note, 0, len(results))
	for _, r := range results {
		notes = append(notes, Note{
			ID:          r.ID,
			Destination: r.Metadata["destination"],
			Content:     r.Content,
		})
	}
	return notes, nil
}

// Provider retrieves relevant notes and wraps them as a system prompt
// context provider.
func (s *Store) Provider(ctx context.Context, query, destination string, k int) (systemprompt.ContextProvider, error) {
	notes, err := s.Retrieve(ctx, query, destination, k)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		lines = append(lines, fmt.Sprintf("- %s", strings.TrimSpace(n.Content)))
	}
	return systemprompt.NewStaticProvider("Destination Notes", strings.Join(lines, "\n")), nil
}
