package vectorindex

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PGVectorIndex implements Index on top of Postgres with the pgvector
// extension, reusing the application's GORM connection pool.
type PGVectorIndex struct {
	db        *gorm.DB
	table     string
	dimension int
}

type corpusEmbedding struct {
	Id        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Content   string            `gorm:"type:text;not null"`
	Section   string            `gorm:"type:varchar(255)"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb"`
	Embedding pgvector.Vector
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// NewPGVectorIndex creates (or opens) the embeddings table with the given
// fixed dimension. If the table already exists with a different vector
// dimension, construction fails: querying an index built for another
// embedding provider silently corrupts similarity scores, so a mismatch
// must be rejected up front rather than detected never.
func NewPGVectorIndex(db *gorm.DB, table string, dimension int) (*PGVectorIndex, error) {
	if table == "" {
		table = "corpus_embeddings"
	}
	if dimension <= 0 {
		return nil, fmt.Errorf("vector index dimension must be positive, got %d", dimension)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("enable pgvector extension: %w", err)
	}

	createStmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id uuid PRIMARY KEY,
		content text NOT NULL,
		section varchar(255),
		metadata jsonb,
		embedding vector(%d),
		created_at timestamptz DEFAULT now(),
		updated_at timestamptz DEFAULT now()
	)`, table, dimension)
	if err := db.Exec(createStmt).Error; err != nil {
		return nil, fmt.Errorf("create embeddings table: %w", err)
	}

	// pgvector stores the declared dimension in atttypmod.
	var existing int
	err := db.Raw(
		"SELECT atttypmod FROM pg_attribute WHERE attrelid = ?::regclass AND attname = 'embedding'",
		table,
	).Scan(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("read embedding column dimension: %w", err)
	}
	if existing > 0 && existing != dimension {
		return nil, fmt.Errorf(
			"vector index %s was created with dimension %d but the configured embedding provider produces dimension %d; re-index the corpus before switching providers",
			table, existing, dimension,
		)
	}

	return &PGVectorIndex{
		db:        db,
		table:     table,
		dimension: dimension,
	}, nil
}

func (x *PGVectorIndex) Dimension() int {
	return x.dimension
}

func (x *PGVectorIndex) Upsert(ctx context.Context, id uuid.UUID, vector []float32, payload Payload) error {
	if len(vector) != x.dimension {
		return fmt.Errorf("vector dimension %d does not match index dimension %d", len(vector), x.dimension)
	}

	metadata := make(datatypes.JSONMap, len(payload.Metadata))
	for k, v := range payload.Metadata {
		metadata[k] = v
	}

	row := corpusEmbedding{
		Id:        id,
		Content:   payload.Content,
		Section:   payload.Section,
		Metadata:  metadata,
		Embedding: pgvector.NewVector(vector),
	}

	return x.db.WithContext(ctx).
		Table(x.table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}

func (x *PGVectorIndex) Search(ctx context.Context, vector []float32, k int) ([]Hit, error) {
	if len(vector) != x.dimension {
		return nil, fmt.Errorf("query vector dimension %d does not match index dimension %d", len(vector), x.dimension)
	}
	if k <= 0 {
		k = 5
	}

	type result struct {
		corpusEmbedding
		Score float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	// Cosine distance in pgvector is 1 - cosine_similarity,
	// so 1 - (embedding <=> query) recovers the similarity. The ORDER BY
	// must go through clause.OrderBy; gorm's Order drops expression values.
	err := x.db.WithContext(ctx).
		Table(x.table).
		Select("*, 1 - (embedding <=> ?) AS score", queryVector).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <=> ?", Vars: []interface{}{queryVector}, WithoutParentheses: true},
		}).
		Limit(k).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	hits := make([]Hit, len(results))
	for i, res := range results {
		metadata := make(map[string]string, len(res.Metadata))
		for key, value := range res.Metadata {
			if s, ok := value.(string); ok {
				metadata[key] = s
			}
		}

		score := res.Score
		if score < 0 {
			score = 0
		}

		hits[i] = Hit{
			Id:    res.Id,
			Score: score,
			Payload: Payload{
				Content:  res.Content,
				Section:  res.Section,
				Metadata: metadata,
			},
		}
	}
	return hits, nil
}

func (x *PGVectorIndex) Count(ctx context.Context) (int64, error) {
	var count int64
	err := x.db.WithContext(ctx).Table(x.table).Count(&count).Error
	return count, err
}
