package sessions

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/medkeeper/internal/client/models"
	"github.com/dmitrijs2005/medkeeper/internal/dbx"
)

const (
	metadataTable  = "metadata"
	credentialsKey = "user"
)

var errNotConfirmed = errors.New("stored credentials did not read back")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.StoredCredentials, error) {
	raw, err := readValue(ctx, r.db)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var creds models.StoredCredentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if creds.Username == "" || creds.Token == "" {
		return nil, ErrMalformed
	}
	return &creds, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, creds models.StoredCredentials) error {
	value, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	query, args, err := sq.Insert(metadataTable).
		Columns("key", "value").
		Values(credentialsKey, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert: %w", err)
	}

	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}
		stored, err := readValue(ctx, tx)
		if err != nil {
			return err
		}
		if !bytes.Equal(stored, value) {
			return errNotConfirmed
		}
		return nil
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	query, args, err := sq.Delete(metadataTable).Where(sq.Eq{"key": credentialsKey}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func readValue(ctx context.Context, db dbx.DBTX) ([]byte, error) {
	query, args, err := sq.Select("value").From(metadataTable).Where(sq.Eq{"key": credentialsKey}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	var value []byte
	err = db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	return value, nil
}
