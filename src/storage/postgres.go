package storage

import (
	"database/sql"
	"fmt"

	"wellness-observer/src/logger"
	"wellness-observer/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	return &PostgresDB{
		Config: cfg,
		Schema: cfg.Name,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// Create Schema
	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	if err := d.createTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresDB initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) createTables() error {
	queries := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS "%s"."requests" (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				created_at BIGINT NOT NULL,
				client_features TEXT NOT NULL DEFAULT '{}',
				label TEXT,
				label_category TEXT,
				status TEXT NOT NULL DEFAULT 'pending',
				feature_id TEXT
			);
		`, d.Schema),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS idx_requests_status
			ON "%s"."requests" (status, user_id, created_at);
		`, d.Schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS "%s"."features" (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				created_at BIGINT NOT NULL,
				source TEXT NOT NULL,
				data TEXT NOT NULL
			);
		`, d.Schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS "%s"."labels" (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				label TEXT NOT NULL,
				category TEXT,
				created_at BIGINT NOT NULL
			);
		`, d.Schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS "%s"."feature_labels" (
				feature_id TEXT NOT NULL,
				label_id TEXT NOT NULL,
				PRIMARY KEY (feature_id, label_id)
			);
		`, d.Schema),
	}

	for _, query := range queries {
		if _, err := d.DB.Exec(query); err != nil {
			return fmt.Errorf("failed to create schema tables: %w", err)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) EnqueueRequest(req models.MFeatureRequest) error {
	clientFeatures := req.ClientFeatures
	if clientFeatures == "" {
		clientFeatures = "{}"
	}
	status := req.Status
	if status == "" {
		status = models.RequestStatusPending
	}

	_, err := d.DB.Exec(fmt.Sprintf(`
		INSERT INTO "%s"."requests" (id, user_id, created_at, client_features, label, label_category, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, d.Schema), req.ID, req.UserID, req.CreatedAt, clientFeatures, req.Label, req.LabelCategory, status)
	return err
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) ListPendingRequests(userID string) ([]models.MFeatureRequest, error) {
	rows, err := d.DB.Query(fmt.Sprintf(`
		SELECT id, user_id, created_at, client_features, label, label_category, status, feature_id
		FROM "%s"."requests"
		WHERE status = $1 AND user_id = $2
		ORDER BY created_at ASC
	`, d.Schema), models.RequestStatusPending, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) PendingUserIDs() ([]string, error) {
	rows, err := d.DB.Query(fmt.Sprintf(`
		SELECT DISTINCT user_id FROM "%s"."requests" WHERE status = $1
	`, d.Schema), models.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveFeature(row models.MFeatureRow) error {
	_, err := d.DB.Exec(fmt.Sprintf(`
		INSERT INTO "%s"."features" (id, user_id, created_at, source, data)
		VALUES ($1, $2, $3, $4, $5)
	`, d.Schema), row.ID, row.UserID, row.CreatedAt, row.Source, row.Data)
	return err
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) ListFeatures(limit int) ([]models.MFeatureRow, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := d.DB.Query(fmt.Sprintf(`
		SELECT id, user_id, created_at, source, data
		FROM "%s"."features"
		ORDER BY created_at DESC
		LIMIT $1
	`, d.Schema), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MFeatureRow
	for rows.Next() {
		var r models.MFeatureRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.CreatedAt, &r.Source, &r.Data); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveLabel(label models.MLabelRow, featureID string) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf(`
		INSERT INTO "%s"."labels" (id, user_id, label, category, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, d.Schema), label.ID, label.UserID, label.Label, label.Category, label.CreatedAt); err != nil {
		return err
	}

	if featureID != "" {
		if _, err := tx.Exec(fmt.Sprintf(`
			INSERT INTO "%s"."feature_labels" (feature_id, label_id)
			VALUES ($1, $2)
		`, d.Schema), featureID, label.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) FulfillRequest(requestID, featureID string) error {
	_, err := d.DB.Exec(fmt.Sprintf(`
		UPDATE "%s"."requests" SET status = $1, feature_id = $2 WHERE id = $3
	`, d.Schema), models.RequestStatusFulfilled, featureID, requestID)
	return err
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
