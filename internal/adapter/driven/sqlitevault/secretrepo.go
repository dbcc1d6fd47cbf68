package sqlitevault

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ericfisherdev/keyvault/internal/domain/model"
	"github.com/ericfisherdev/keyvault/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.SecretStore  = (*SecretRepo)(nil)
	_ driven.SecretLister = (*SecretRepo)(nil)
)

// SecretRepo is the SQLite implementation of the SecretStore port.
// Values are encrypted with AES-256-GCM before write and decrypted after
// read, so the database file never holds plaintext.
type SecretRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key.
}

// NewSecretRepo creates a SecretRepo encrypting with the given 32-byte key,
// normally obtained from DefaultKey or DeriveKey.
func NewSecretRepo(db *DB, key []byte) *SecretRepo {
	return &SecretRepo{db: db, key: key}
}

// Set stores or replaces the value for (service, account).
func (r *SecretRepo) Set(ctx context.Context, service, account, value string) error {
	encrypted, err := r.encrypt(value)
	if err != nil {
		return err
	}

	const query = `INSERT OR REPLACE INTO secrets (service, account, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`
	_, err = r.db.Writer.ExecContext(ctx, query, service, account, encrypted)
	if err != nil {
		return fmt.Errorf("set secret %s/%s: %w", service, account, err)
	}
	return nil
}

// Get retrieves the plaintext value for (service, account). Absence is
// reported as driven.ErrSecretNotFound; a row that fails to decrypt (wrong
// key, tampered ciphertext) is a distinct error.
func (r *SecretRepo) Get(ctx context.Context, service, account string) (string, error) {
	const query = `SELECT value FROM secrets WHERE service = ? AND account = ?`
	var encrypted string
	err := r.db.Reader.QueryRowContext(ctx, query, service, account).Scan(&encrypted)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("vault entry %s/%s: %w", service, account, driven.ErrSecretNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get secret %s/%s: %w", service, account, err)
	}

	plaintext, err := r.decrypt(encrypted)
	if err != nil {
		return "", fmt.Errorf("decrypt secret %s/%s: %w", service, account, err)
	}
	return plaintext, nil
}

// List returns the entries stored under service ordered by account.
// Entries carry no values; listings are for inventory, not disclosure.
func (r *SecretRepo) List(ctx context.Context, service string) ([]model.Entry, error) {
	const query = `SELECT service, account, updated_at FROM secrets WHERE service = ? ORDER BY account`
	rows, err := r.db.Reader.QueryContext(ctx, query, service)
	if err != nil {
		return nil, fmt.Errorf("list secrets for %s: %w", service, err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		var entry model.Entry
		var updatedAt string
		if err := rows.Scan(&entry.Service, &entry.Account, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		entry.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse updated_at for %s/%s: %w", entry.Service, entry.Account, err)
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// Delete removes the entry for (service, account). Deleting an absent
// entry succeeds; the port contract is that Delete establishes absence.
func (r *SecretRepo) Delete(ctx context.Context, service, account string) error {
	const query = `DELETE FROM secrets WHERE service = ? AND account = ?`
	_, err := r.db.Writer.ExecContext(ctx, query, service, account)
	if err != nil {
		return fmt.Errorf("delete secret %s/%s: %w", service, account, err)
	}
	return nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded
// string containing the nonce (12 bytes) prepended to the ciphertext.
func (r *SecretRepo) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *SecretRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
