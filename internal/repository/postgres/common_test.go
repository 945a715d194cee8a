package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/histcollect/histcollect/internal/config"
	"github.com/histcollect/histcollect/internal/pkg/database"
)

// getTestDB returns a database connection for integration tests.
// Returns nil if the database is not available (skips tests).
func getTestDB(t *testing.T) *database.PostgresDB {
	if os.Getenv("POSTGRES_TEST_HOST") == "" {
		t.Skip("Skipping integration test: POSTGRES_TEST_HOST not set")
		return nil
	}

	cfg := config.PostgresConfig{
		Host:     os.Getenv("POSTGRES_TEST_HOST"),
		Port:     5432,
		User:     os.Getenv("POSTGRES_TEST_USER"),
		Password: os.Getenv("POSTGRES_TEST_PASS"),
		Database: os.Getenv("POSTGRES_TEST_DB"),
		SSLMode:  "disable",
		MaxConns: 5,
		MinConns: 1,
	}

	if cfg.Database == "" {
		cfg.Database = "test_collections"
	}
	if cfg.User == "" {
		cfg.User = "postgres"
	}

	db, err := database.NewPostgres(context.Background(), cfg)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to PostgreSQL: %v", err)
		return nil
	}

	require.NoError(t, EnsureSchema(context.Background(), db))
	return db
}

// seededHDCA holds the ids of a fixture history holding a list:paired HDCA
type seededHDCA struct {
	historyID int64
	hdcaID    int64
	outerID   int64
	innerIDs  []int64
	hdaIDs    []int64
}

// seedHDCA inserts a history owned by userID with a list:paired collection of
// two pairs, wrapped by one HDCA
func seedHDCA(t *testing.T, db *database.PostgresDB, userID int64) seededHDCA {
	t.Helper()
	ctx := context.Background()
	var s seededHDCA

	require.NoError(t, db.Pool.QueryRow(ctx,
		`INSERT INTO history (user_id, name) VALUES ($1, 'test history') RETURNING id`, userID,
	).Scan(&s.historyID))

	require.NoError(t, db.Pool.QueryRow(ctx,
		`INSERT INTO dataset_collection (collection_type) VALUES ('list:paired') RETURNING id`,
	).Scan(&s.outerID))

	hid := 1
	for i, sample := range []string{"sample1", "sample2"} {
		var innerID int64
		require.NoError(t, db.Pool.QueryRow(ctx,
			`INSERT INTO dataset_collection (collection_type) VALUES ('paired') RETURNING id`,
		).Scan(&innerID))
		s.innerIDs = append(s.innerIDs, innerID)

		// reverse first so storage order differs from index order
		for j, ident := range []string{"reverse", "forward"} {
			var hdaID int64
			require.NoError(t, db.Pool.QueryRow(ctx, `
				INSERT INTO history_dataset_association (history_id, hid, name, extension, state)
				VALUES ($1, $2, $3, 'fastqsanger', 'ok') RETURNING id
			`, s.historyID, hid, sample+"_"+ident).Scan(&hdaID))
			hid++
			s.hdaIDs = append(s.hdaIDs, hdaID)

			_, err := db.Pool.Exec(ctx, `
				INSERT INTO dataset_collection_element (dataset_collection_id, element_index, element_identifier, hda_id)
				VALUES ($1, $2, $3, $4)
			`, innerID, 1-j, ident, hdaID)
			require.NoError(t, err)
		}

		_, err := db.Pool.Exec(ctx, `
			INSERT INTO dataset_collection_element (dataset_collection_id, element_index, element_identifier, child_collection_id)
			VALUES ($1, $2, $3, $4)
		`, s.outerID, i, sample, innerID)
		require.NoError(t, err)
	}

	require.NoError(t, db.Pool.QueryRow(ctx, `
		INSERT INTO history_dataset_collection_association (history_id, collection_id, hid, name)
		VALUES ($1, $2, $3, 'paired samples') RETURNING id
	`, s.historyID, s.outerID, hid).Scan(&s.hdcaID))

	return s
}

// cleanupHDCA removes everything seedHDCA inserted
func cleanupHDCA(t *testing.T, db *database.PostgresDB, s seededHDCA) {
	ctx := context.Background()
	_, _ = db.Pool.Exec(ctx, "DELETE FROM history_dataset_collection_tag_association WHERE hdca_id = $1", s.hdcaID)
	_, _ = db.Pool.Exec(ctx, "DELETE FROM history_dataset_collection_annotation_association WHERE hdca_id = $1", s.hdcaID)
	_, _ = db.Pool.Exec(ctx, "DELETE FROM history_dataset_collection_association WHERE id = $1", s.hdcaID)
	collections := append([]int64{s.outerID}, s.innerIDs...)
	_, _ = db.Pool.Exec(ctx, "DELETE FROM dataset_collection_element WHERE dataset_collection_id = ANY($1)", collections)
	_, _ = db.Pool.Exec(ctx, "DELETE FROM dataset_collection WHERE id = ANY($1)", collections)
	_, _ = db.Pool.Exec(ctx, "DELETE FROM history_dataset_association WHERE id = ANY($1)", s.hdaIDs)
	_, _ = db.Pool.Exec(ctx, "DELETE FROM history WHERE id = $1", s.historyID)
}

// extraHDCA is a second association over an already seeded collection
type extraHDCA struct {
	historyID int64
	hdcaID    int64
}

// addHDCA inserts a history owned by userID with an HDCA over collectionID
func addHDCA(t *testing.T, db *database.PostgresDB, userID, collectionID int64) extraHDCA {
	t.Helper()
	ctx := context.Background()
	var e extraHDCA

	require.NoError(t, db.Pool.QueryRow(ctx,
		`INSERT INTO history (user_id, name) VALUES ($1, 'shared history') RETURNING id`, userID,
	).Scan(&e.historyID))
	require.NoError(t, db.Pool.QueryRow(ctx, `
		INSERT INTO history_dataset_collection_association (history_id, collection_id, hid, name)
		VALUES ($1, $2, 1, 'shared samples') RETURNING id
	`, e.historyID, collectionID).Scan(&e.hdcaID))
	return e
}

// cleanupExtraHDCA removes what addHDCA inserted; run before cleanupHDCA
func cleanupExtraHDCA(t *testing.T, db *database.PostgresDB, e extraHDCA) {
	ctx := context.Background()
	_, _ = db.Pool.Exec(ctx, "DELETE FROM history_dataset_collection_association WHERE id = $1", e.hdcaID)
	_, _ = db.Pool.Exec(ctx, "DELETE FROM history WHERE id = $1", e.historyID)
}
