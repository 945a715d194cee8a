package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateSQL(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		maxLen   int
		expected string
	}{
		{"short SQL unchanged", "SELECT * FROM history", 100, "SELECT * FROM history"},
		{"exactly at max length", "SELECT * FROM history", 21, "SELECT * FROM history"},
		{"truncated with ellipsis", "SELECT * FROM history WHERE id = 1", 20, "SELECT * FROM histor..."},
		{"empty string", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateSQL(tt.sql, tt.maxLen))
		})
	}
}

func TestOperationOf(t *testing.T) {
	assert.Equal(t, "select", operationOf("\n\t\tSELECT id FROM dataset_collection"))
	assert.Equal(t, "select", operationOf("WITH RECURSIVE tree (id) AS (SELECT $1 UNION SELECT child FROM t) SELECT id FROM tree"))
	assert.Equal(t, "update", operationOf("WITH RECURSIVE tree (id) AS (SELECT 1), shared (id) AS (SELECT 2) UPDATE history_dataset_association SET purged = TRUE"))
	assert.Equal(t, "with", operationOf("WITH RECURSIVE tree AS (...)"))
	assert.Equal(t, "update", operationOf("update history_dataset_collection_association set deleted = true"))
	assert.Equal(t, "unknown", operationOf("   "))
}
