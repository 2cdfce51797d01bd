package vectorindex

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recorderDriver is a no-op database/sql driver that records every statement
// it is asked to prepare. Queries return zero rows, so the full query path
// runs without a live Postgres while the generated SQL stays observable.
var (
	recordedMu   sync.Mutex
	recordedSQLs []string
)

func init() {
	sql.Register("vectorindex-recorder", recorderDriver{})
}

func recordedQueries() []string {
	recordedMu.Lock()
	defer recordedMu.Unlock()
	out := make([]string, len(recordedSQLs))
	copy(out, recordedSQLs)
	return out
}

type recorderDriver struct{}

func (recorderDriver) Open(string) (driver.Conn, error) { return recorderConn{}, nil }

type recorderConn struct{}

func (recorderConn) Prepare(query string) (driver.Stmt, error) {
	recordedMu.Lock()
	recordedSQLs = append(recordedSQLs, query)
	recordedMu.Unlock()
	return recorderStmt{}, nil
}

func (recorderConn) Close() error { return nil }

func (recorderConn) Begin() (driver.Tx, error) { return recorderTx{}, nil }

type recorderStmt struct{}

func (recorderStmt) Close() error { return nil }

func (recorderStmt) NumInput() int { return -1 }

func (recorderStmt) Exec([]driver.Value) (driver.Result, error) { return driver.ResultNoRows, nil }

func (recorderStmt) Query([]driver.Value) (driver.Rows, error) { return recorderRows{}, nil }

type recorderTx struct{}

func (recorderTx) Commit() error { return nil }

func (recorderTx) Rollback() error { return nil }

type recorderRows struct{}

func (recorderRows) Columns() []string { return nil }

func (recorderRows) Close() error { return nil }

func (recorderRows) Next([]driver.Value) error { return io.EOF }

func newRecordedIndex(t *testing.T, dimension int) *PGVectorIndex {
	t.Helper()

	sqlDB, err := sql.Open("vectorindex-recorder", "")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	index, err := NewPGVectorIndex(db, "corpus_embeddings", dimension)
	require.NoError(t, err)
	return index
}

func TestSearchOrdersByCosineDistance(t *testing.T) {
	index := newRecordedIndex(t, 3)

	_, err := index.Search(context.Background(), []float32{1, 0, 0}, 4)
	require.NoError(t, err)

	var searchSQL string
	for _, q := range recordedQueries() {
		if strings.Contains(q, "AS score") {
			searchSQL = q
		}
	}
	require.NotEmpty(t, searchSQL, "search query was never issued")

	// Without an ORDER BY on the distance operator, LIMIT k returns k
	// arbitrary rows instead of the k nearest.
	assert.Contains(t, searchSQL, "ORDER BY embedding <=> ")

	orderIdx := strings.Index(searchSQL, "ORDER BY")
	limitIdx := strings.Index(searchSQL, "LIMIT")
	require.GreaterOrEqual(t, limitIdx, 0)
	assert.Less(t, orderIdx, limitIdx)
}

func TestSearchRejectsWrongDimension(t *testing.T) {
	index := newRecordedIndex(t, 3)

	_, err := index.Search(context.Background(), []float32{1, 0}, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match index dimension")
}
