package storage

import (
	"database/sql"
	"fmt"

	"wellness-observer/src/logger"
	"wellness-observer/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type AsyncSQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAsyncSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*AsyncSQLiteDB, error) {
	return &AsyncSQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		d.Logger.Warning("Failed to enable foreign keys: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

// createTables builds the queue and record tables. The queue must survive
// restarts, so tables are created in place, never dropped.
func (d *AsyncSQLiteDB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS requests (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			client_features TEXT NOT NULL DEFAULT '{}',
			label TEXT,
			label_category TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			feature_id TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_requests_status ON requests (status, user_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS features (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			source TEXT NOT NULL,
			data TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_features_created ON features (created_at DESC);`,
		`CREATE TABLE IF NOT EXISTS labels (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			label TEXT NOT NULL,
			category TEXT,
			created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS feature_labels (
			feature_id TEXT NOT NULL,
			label_id TEXT NOT NULL,
			PRIMARY KEY (feature_id, label_id)
		);`,
	}

	for _, query := range queries {
		if _, err := d.DB.Exec(query); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) EnqueueRequest(req models.MFeatureRequest) error {
	clientFeatures := req.ClientFeatures
	if clientFeatures == "" {
		clientFeatures = "{}"
	}
	status := req.Status
	if status == "" {
		status = models.RequestStatusPending
	}

	_, err := d.DB.Exec(`
		INSERT INTO requests (id, user_id, created_at, client_features, label, label_category, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, req.ID, req.UserID, req.CreatedAt, clientFeatures, req.Label, req.LabelCategory, status)
	return err
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) ListPendingRequests(userID string) ([]models.MFeatureRequest, error) {
	rows, err := d.DB.Query(`
		SELECT id, user_id, created_at, client_features, label, label_category, status, feature_id
		FROM requests
		WHERE status = ? AND user_id = ?
		ORDER BY created_at ASC
	`, models.RequestStatusPending, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) PendingUserIDs() ([]string, error) {
	rows, err := d.DB.Query(`
		SELECT DISTINCT user_id FROM requests WHERE status = ?
	`, models.RequestStatusPending)
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

func (d *AsyncSQLiteDB) SaveFeature(row models.MFeatureRow) error {
	_, err := d.DB.Exec(`
		INSERT INTO features (id, user_id, created_at, source, data)
		VALUES (?, ?, ?, ?, ?)
	`, row.ID, row.UserID, row.CreatedAt, row.Source, row.Data)
	return err
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) ListFeatures(limit int) ([]models.MFeatureRow, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := d.DB.Query(`
		SELECT id, user_id, created_at, source, data
		FROM features
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
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

func (d *AsyncSQLiteDB) SaveLabel(label models.MLabelRow, featureID string) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO labels (id, user_id, label, category, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, label.ID, label.UserID, label.Label, label.Category, label.CreatedAt); err != nil {
		return err
	}

	if featureID != "" {
		if _, err := tx.Exec(`
			INSERT INTO feature_labels (feature_id, label_id)
			VALUES (?, ?)
		`, featureID, label.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) FulfillRequest(requestID, featureID string) error {
	_, err := d.DB.Exec(`
		UPDATE requests SET status = ?, feature_id = ? WHERE id = ?
	`, models.RequestStatusFulfilled, featureID, requestID)
	return err
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

// -----------------------------------------------------------------------------

func scanRequests(rows *sql.Rows) ([]models.MFeatureRequest, error) {
	var out []models.MFeatureRequest
	for rows.Next() {
		var r models.MFeatureRequest
		if err := rows.Scan(&r.ID, &r.UserID, &r.CreatedAt, &r.ClientFeatures, &r.Label, &r.LabelCategory, &r.Status, &r.FeatureID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
