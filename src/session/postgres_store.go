package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/khabaroff/missing-persons-portal/src/database"
)

// PostgresStorage keeps values in the client_storage table
type PostgresStorage struct {
	db        *database.Database
	encryptor *Encryptor
}

// NewPostgresStorage creates a store on top of db. encryptor may be nil.
func NewPostgresStorage(db *database.Database, encryptor *Encryptor) *PostgresStorage {
	return &PostgresStorage{db: db, encryptor: encryptor}
}

func (s *PostgresStorage) Get(ctx context.Context, clientID, key string) (string, error) {
	var raw []byte
	err := s.db.QueryRow(ctx,
		`SELECT value FROM client_storage WHERE client_id = $1 AND key = $2`,
		clientID, key,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}

	plain, err := s.encryptor.Decrypt(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt %s: %w", key, err)
	}
	return string(plain), nil
}

func (s *PostgresStorage) Set(ctx context.Context, clientID, key, value string) error {
	sealed, err := s.encryptor.Encrypt([]byte(value))
	if err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", key, err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO client_storage (client_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		clientID, key, sealed,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, clientID, key string) error {
	if _, err := s.db.Exec(ctx,
		`DELETE FROM client_storage WHERE client_id = $1 AND key = $2`,
		clientID, key,
	); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStorage) Health(ctx context.Context) error {
	return s.db.Health(ctx)
}
