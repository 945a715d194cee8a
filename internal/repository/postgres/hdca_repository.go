package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/histcollect/histcollect/internal/domain"
	"github.com/histcollect/histcollect/internal/pkg/database"
	apperrors "github.com/histcollect/histcollect/internal/pkg/errors"
)

// querier is satisfied by both the pool and a transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const collectionTreeCTE = `
	WITH RECURSIVE tree (id) AS (
		SELECT $1::BIGINT
		UNION
		SELECT dce.child_collection_id
		FROM dataset_collection_element dce
		JOIN tree ON dce.dataset_collection_id = tree.id
		WHERE dce.child_collection_id IS NOT NULL
	)
`

// HDCARepository handles history dataset collection associations in PostgreSQL
type HDCARepository struct {
	db *database.PostgresDB
}

// NewHDCARepository creates a new HDCA repository
func NewHDCARepository(db *database.PostgresDB) *HDCARepository {
	return &HDCARepository{db: db}
}

// GetByID loads an HDCA with its history, tags, annotation and full collection tree
func (r *HDCARepository) GetByID(ctx context.Context, id int64) (*domain.HDCA, error) {
	var hdca *domain.HDCA
	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		hdca, err = r.load(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return hdca, nil
}

func (r *HDCARepository) load(ctx context.Context, q querier, id int64) (*domain.HDCA, error) {
	query := `
		SELECT hdca.id, hdca.history_id, hdca.hid, hdca.name, hdca.deleted, hdca.purged,
		       hdca.visible, hdca.collection_id, hdca.create_time, hdca.update_time,
		       h.user_id, h.name, h.published, h.importable, h.deleted
		FROM history_dataset_collection_association hdca
		JOIN history h ON h.id = hdca.history_id
		WHERE hdca.id = $1
	`

	hdca := &domain.HDCA{History: &domain.History{}}
	err := q.QueryRow(ctx, query, id).Scan(
		&hdca.ID,
		&hdca.HistoryID,
		&hdca.HID,
		&hdca.Name,
		&hdca.Deleted,
		&hdca.Purged,
		&hdca.Visible,
		&hdca.CollectionID,
		&hdca.CreateTime,
		&hdca.UpdateTime,
		&hdca.History.UserID,
		&hdca.History.Name,
		&hdca.History.Published,
		&hdca.History.Importable,
		&hdca.History.Deleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("dataset collection")
		}
		return nil, fmt.Errorf("failed to get hdca: %w", err)
	}
	hdca.History.ID = hdca.HistoryID

	if hdca.Tags, err = r.loadTags(ctx, q, id); err != nil {
		return nil, err
	}
	if hdca.Annotation, err = r.loadAnnotation(ctx, q, id); err != nil {
		return nil, err
	}
	if hdca.Collection, err = r.loadCollection(ctx, q, hdca.CollectionID); err != nil {
		return nil, err
	}

	return hdca, nil
}

func (r *HDCARepository) loadTags(ctx context.Context, q querier, id int64) ([]domain.Tag, error) {
	rows, err := q.Query(ctx, `
		SELECT user_tname, user_value
		FROM history_dataset_collection_tag_association
		WHERE hdca_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query hdca tags: %w", err)
	}

	tags, err := pgx.CollectRows(rows, pgx.RowToStructByName[tagRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan hdca tags: %w", err)
	}

	out := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, domain.Tag{Name: t.Name, Value: t.Value})
	}
	return out, nil
}

func (r *HDCARepository) loadAnnotation(ctx context.Context, q querier, id int64) (*string, error) {
	var annotation string
	err := q.QueryRow(ctx, `
		SELECT annotation
		FROM history_dataset_collection_annotation_association
		WHERE hdca_id = $1
		ORDER BY id DESC
		LIMIT 1
	`, id).Scan(&annotation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hdca annotation: %w", err)
	}
	return &annotation, nil
}

func (r *HDCARepository) loadCollection(ctx context.Context, q querier, rootID int64) (*domain.DatasetCollection, error) {
	rows, err := q.Query(ctx, collectionTreeCTE+`
		SELECT dc.id, dc.collection_type, dc.populated, dc.populated_state,
		       dc.populated_state_message, dc.create_time, dc.update_time
		FROM dataset_collection dc
		JOIN tree ON tree.id = dc.id
	`, rootID)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection tree: %w", err)
	}
	collections, err := pgx.CollectRows(rows, pgx.RowToStructByName[collectionRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan collections: %w", err)
	}
	if len(collections) == 0 {
		return nil, apperrors.Inconsistent(fmt.Sprintf("collection %d is missing", rootID))
	}

	ids := make([]int64, 0, len(collections))
	for _, c := range collections {
		ids = append(ids, c.ID)
	}

	rows, err = q.Query(ctx, `
		SELECT id, dataset_collection_id, element_index, element_identifier, hda_id, child_collection_id
		FROM dataset_collection_element
		WHERE dataset_collection_id = ANY($1)
		ORDER BY dataset_collection_id, element_index
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection elements: %w", err)
	}
	elements, err := pgx.CollectRows(rows, pgx.RowToStructByName[elementRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan collection elements: %w", err)
	}

	var hdas []hdaRow
	if leafIDs := hdaIDs(elements); len(leafIDs) > 0 {
		rows, err = q.Query(ctx, `
			SELECT id, history_id, hid, name, extension, state, deleted, purged, visible, create_time, update_time
			FROM history_dataset_association
			WHERE id = ANY($1)
		`, leafIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to query collection datasets: %w", err)
		}
		hdas, err = pgx.CollectRows(rows, pgx.RowToStructByName[hdaRow])
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection datasets: %w", err)
		}
	}

	return assembleTree(rootID, collections, elements, hdas)
}

// SetDeleted sets or clears the deleted flag of an HDCA that is not purged
func (r *HDCARepository) SetDeleted(ctx context.Context, id int64, deleted bool) error {
	var purged bool
	err := r.db.Pool.QueryRow(ctx, `
		WITH target AS (
			SELECT id, purged FROM history_dataset_collection_association WHERE id = $1
		), updated AS (
			UPDATE history_dataset_collection_association hdca
			SET deleted = $2, update_time = NOW()
			FROM target
			WHERE hdca.id = target.id AND NOT target.purged
			RETURNING hdca.id
		)
		SELECT target.purged FROM target
	`, id, deleted).Scan(&purged)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("dataset collection")
		}
		return fmt.Errorf("failed to update hdca: %w", err)
	}
	if purged {
		return apperrors.Conflict("dataset collection is purged")
	}
	return nil
}

// purgeDatasetsQuery purges the datasets of collection $1 that live in history
// $3 and are not reachable from any other unpurged HDCA than $2
const purgeDatasetsQuery = `
	WITH RECURSIVE tree (id) AS (
		SELECT $1::BIGINT
		UNION
		SELECT dce.child_collection_id
		FROM dataset_collection_element dce
		JOIN tree ON dce.dataset_collection_id = tree.id
		WHERE dce.child_collection_id IS NOT NULL
	), shared (id) AS (
		SELECT collection_id
		FROM history_dataset_collection_association
		WHERE id <> $2 AND NOT purged
		UNION
		SELECT dce.child_collection_id
		FROM dataset_collection_element dce
		JOIN shared ON dce.dataset_collection_id = shared.id
		WHERE dce.child_collection_id IS NOT NULL
	), shared_datasets AS (
		SELECT dce.hda_id
		FROM dataset_collection_element dce
		JOIN shared ON dce.dataset_collection_id = shared.id
		WHERE dce.hda_id IS NOT NULL
	)
	UPDATE history_dataset_association hda
	SET deleted = TRUE, purged = TRUE, update_time = NOW()
	FROM dataset_collection_element dce
	JOIN tree ON tree.id = dce.dataset_collection_id
	WHERE dce.hda_id = hda.id
		AND NOT hda.purged
		AND hda.history_id = $3
		AND hda.id NOT IN (SELECT hda_id FROM shared_datasets)
`

// Purge marks a deleted HDCA purged. The datasets of its collection tree are
// purged too when they belong to the HDCA's own history and no other unpurged
// HDCA still reaches them. It returns the number of datasets purged.
func (r *HDCARepository) Purge(ctx context.Context, id int64) (int64, error) {
	var purged int64
	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		var collectionID, historyID int64
		err := tx.QueryRow(ctx, `
			UPDATE history_dataset_collection_association
			SET purged = TRUE, update_time = NOW()
			WHERE id = $1 AND deleted AND NOT purged
			RETURNING collection_id, history_id
		`, id).Scan(&collectionID, &historyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.Conflict("dataset collection must be deleted before it is purged")
			}
			return fmt.Errorf("failed to purge hdca: %w", err)
		}

		tag, err := tx.Exec(ctx, purgeDatasetsQuery, collectionID, id, historyID)
		if err != nil {
			return fmt.Errorf("failed to purge collection datasets: %w", err)
		}
		purged = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return purged, nil
}

// SetTags replaces the tags of an HDCA
func (r *HDCARepository) SetTags(ctx context.Context, id, userID int64, tags []domain.Tag) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		batch.Queue(`DELETE FROM history_dataset_collection_tag_association WHERE hdca_id = $1`, id)
		for _, t := range tags {
			batch.Queue(`
				INSERT INTO history_dataset_collection_tag_association (hdca_id, user_id, user_tname, user_value)
				VALUES ($1, $2, $3, $4)
			`, id, userID, t.Name, t.Value)
		}
		batch.Queue(`UPDATE history_dataset_collection_association SET update_time = NOW() WHERE id = $1`, id)

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to set hdca tags: %w", err)
		}
		return nil
	})
}

// SetAnnotation replaces the annotation of an HDCA; nil removes it
func (r *HDCARepository) SetAnnotation(ctx context.Context, id, userID int64, annotation *string) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			DELETE FROM history_dataset_collection_annotation_association WHERE hdca_id = $1
		`, id); err != nil {
			return fmt.Errorf("failed to clear hdca annotation: %w", err)
		}

		if annotation == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO history_dataset_collection_annotation_association (hdca_id, user_id, annotation)
			VALUES ($1, $2, $3)
		`, id, userID, *annotation); err != nil {
			return fmt.Errorf("failed to set hdca annotation: %w", err)
		}
		return nil
	})
}
