// Package postgres provides the pgx-backed implementation of the estate
// store. The attach dual-writes run inside a transaction with the will row
// locked, which gives the same atomicity the memory store gets from its
// mutex. Insertion order is materialized in a seq column so listings stay
// stable across connections.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"testament/internal/estate/models"
	"testament/internal/estate/store"
	id "testament/pkg/domain"
	"testament/pkg/platform/sentinel"
)

var _ store.Store = (*Store)(nil)

// Store persists the five collections in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New constructs a Postgres-backed store over an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// One statement per entry: pgx's extended protocol does not accept
// multi-statement strings.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         UUID PRIMARY KEY,
		seq        BIGSERIAL,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS executors (
		id         UUID PRIMARY KEY,
		seq        BIGSERIAL,
		name       TEXT NOT NULL,
		contact    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS wills (
		id            UUID PRIMARY KEY,
		seq           BIGSERIAL,
		user_id       UUID NOT NULL,
		executor_id   UUID NOT NULL,
		assets        JSONB NOT NULL DEFAULT '[]',
		beneficiaries JSONB NOT NULL DEFAULT '[]',
		created_at    TIMESTAMPTZ NOT NULL,
		is_executed   BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS assets (
		id         UUID PRIMARY KEY,
		seq        BIGSERIAL,
		will_id    UUID NOT NULL,
		name       TEXT NOT NULL,
		value      BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS beneficiaries (
		id         UUID PRIMARY KEY,
		seq        BIGSERIAL,
		will_id    UUID NOT NULL,
		name       TEXT NOT NULL,
		share      BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, created_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = $2, email = $3, created_at = $4`,
		user.ID.String(), user.Name, user.Email, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *Store) FindUser(ctx context.Context, userID id.UserID) (*models.User, error) {
	var user models.User
	var rawID string
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, created_at FROM users WHERE id = $1`,
		userID.String()).Scan(&rawID, &user.Name, &user.Email, &user.CreatedAt)
	if err != nil {
		return nil, mapRowError(err, "find user")
	}
	user.ID, err = id.ParseUserID(rawID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, created_at FROM users ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		var user models.User
		var rawID string
		if err := rows.Scan(&rawID, &user.Name, &user.Email, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if user.ID, err = id.ParseUserID(rawID); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (s *Store) SaveExecutor(ctx context.Context, executor *models.Executor) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO executors (id, name, contact, created_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = $2, contact = $3, created_at = $4`,
		executor.ID.String(), executor.Name, executor.Contact, executor.CreatedAt)
	if err != nil {
		return fmt.Errorf("save executor: %w", err)
	}
	return nil
}

func (s *Store) FindExecutor(ctx context.Context, executorID id.ExecutorID) (*models.Executor, error) {
	var executor models.Executor
	var rawID string
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, contact, created_at FROM executors WHERE id = $1`,
		executorID.String()).Scan(&rawID, &executor.Name, &executor.Contact, &executor.CreatedAt)
	if err != nil {
		return nil, mapRowError(err, "find executor")
	}
	executor.ID, err = id.ParseExecutorID(rawID)
	if err != nil {
		return nil, err
	}
	return &executor, nil
}

func (s *Store) ListExecutors(ctx context.Context) ([]*models.Executor, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, contact, created_at FROM executors ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list executors: %w", err)
	}
	defer rows.Close()

	executors := []*models.Executor{}
	for rows.Next() {
		var executor models.Executor
		var rawID string
		if err := rows.Scan(&rawID, &executor.Name, &executor.Contact, &executor.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan executor: %w", err)
		}
		if executor.ID, err = id.ParseExecutorID(rawID); err != nil {
			return nil, err
		}
		executors = append(executors, &executor)
	}
	return executors, rows.Err()
}

func (s *Store) SaveWill(ctx context.Context, will *models.Will) error {
	assets, err := json.Marshal(will.Assets)
	if err != nil {
		return fmt.Errorf("marshal assets: %w", err)
	}
	beneficiaries, err := json.Marshal(will.Beneficiaries)
	if err != nil {
		return fmt.Errorf("marshal beneficiaries: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO wills (id, user_id, executor_id, assets, beneficiaries, created_at, is_executed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			user_id = $2, executor_id = $3, assets = $4,
			beneficiaries = $5, created_at = $6, is_executed = $7`,
		will.ID.String(), will.UserID.String(), will.ExecutorID.String(),
		assets, beneficiaries, will.CreatedAt, will.IsExecuted)
	if err != nil {
		return fmt.Errorf("save will: %w", err)
	}
	return nil
}

func (s *Store) FindWill(ctx context.Context, willID id.WillID) (*models.Will, error) {
	return scanWill(s.pool.QueryRow(ctx,
		`SELECT id, user_id, executor_id, assets, beneficiaries, created_at, is_executed
		 FROM wills WHERE id = $1`, willID.String()))
}

func (s *Store) ListWills(ctx context.Context) ([]*models.Will, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, executor_id, assets, beneficiaries, created_at, is_executed
		 FROM wills ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list wills: %w", err)
	}
	defer rows.Close()

	wills := []*models.Will{}
	for rows.Next() {
		will, err := scanWill(rows)
		if err != nil {
			return nil, err
		}
		wills = append(wills, will)
	}
	return wills, rows.Err()
}

// AttachAsset locks the will row, rewrites the embedded list, and inserts
// the standalone record in the same transaction.
func (s *Store) AttachAsset(ctx context.Context, willID id.WillID, asset *models.Asset) (*models.Will, error) {
	var updated *models.Will
	err := s.withWill(ctx, willID, func(tx pgx.Tx, will *models.Will) error {
		will.Assets = append(will.Assets, *asset)
		assets, err := json.Marshal(will.Assets)
		if err != nil {
			return fmt.Errorf("marshal assets: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE wills SET assets = $1 WHERE id = $2`,
			assets, willID.String()); err != nil {
			return fmt.Errorf("update will assets: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO assets (id, will_id, name, value, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			asset.ID.String(), asset.WillID.String(), asset.Name, int64(asset.Value), asset.CreatedAt); err != nil {
			return fmt.Errorf("insert asset: %w", err)
		}
		updated = will
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AttachBeneficiary mirrors AttachAsset for beneficiary records.
func (s *Store) AttachBeneficiary(ctx context.Context, willID id.WillID, beneficiary *models.Beneficiary) (*models.Will, error) {
	var updated *models.Will
	err := s.withWill(ctx, willID, func(tx pgx.Tx, will *models.Will) error {
		will.Beneficiaries = append(will.Beneficiaries, *beneficiary)
		beneficiaries, err := json.Marshal(will.Beneficiaries)
		if err != nil {
			return fmt.Errorf("marshal beneficiaries: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE wills SET beneficiaries = $1 WHERE id = $2`,
			beneficiaries, willID.String()); err != nil {
			return fmt.Errorf("update will beneficiaries: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO beneficiaries (id, will_id, name, share, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			beneficiary.ID.String(), beneficiary.WillID.String(), beneficiary.Name,
			int64(beneficiary.Share), beneficiary.CreatedAt); err != nil {
			return fmt.Errorf("insert beneficiary: %w", err)
		}
		updated = will
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) SetExecutor(ctx context.Context, willID id.WillID, executorID id.ExecutorID) (*models.Will, error) {
	var updated *models.Will
	err := s.withWill(ctx, willID, func(tx pgx.Tx, will *models.Will) error {
		will.ExecutorID = executorID
		if _, err := tx.Exec(ctx,
			`UPDATE wills SET executor_id = $1 WHERE id = $2`,
			executorID.String(), willID.String()); err != nil {
			return fmt.Errorf("update will executor: %w", err)
		}
		updated = will
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) FindAsset(ctx context.Context, assetID id.AssetID) (*models.Asset, error) {
	var asset models.Asset
	var rawID, rawWillID string
	var value int64
	err := s.pool.QueryRow(ctx,
		`SELECT id, will_id, name, value, created_at FROM assets WHERE id = $1`,
		assetID.String()).Scan(&rawID, &rawWillID, &asset.Name, &value, &asset.CreatedAt)
	if err != nil {
		return nil, mapRowError(err, "find asset")
	}
	asset.Value = uint64(value)
	if asset.ID, err = id.ParseAssetID(rawID); err != nil {
		return nil, err
	}
	if asset.WillID, err = id.ParseWillID(rawWillID); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *Store) ListAssets(ctx context.Context) ([]*models.Asset, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, will_id, name, value, created_at FROM assets ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	assets := []*models.Asset{}
	for rows.Next() {
		var asset models.Asset
		var rawID, rawWillID string
		var value int64
		if err := rows.Scan(&rawID, &rawWillID, &asset.Name, &value, &asset.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		asset.Value = uint64(value)
		if asset.ID, err = id.ParseAssetID(rawID); err != nil {
			return nil, err
		}
		if asset.WillID, err = id.ParseWillID(rawWillID); err != nil {
			return nil, err
		}
		assets = append(assets, &asset)
	}
	return assets, rows.Err()
}

func (s *Store) FindBeneficiary(ctx context.Context, beneficiaryID id.BeneficiaryID) (*models.Beneficiary, error) {
	var beneficiary models.Beneficiary
	var rawID, rawWillID string
	var share int64
	err := s.pool.QueryRow(ctx,
		`SELECT id, will_id, name, share, created_at FROM beneficiaries WHERE id = $1`,
		beneficiaryID.String()).Scan(&rawID, &rawWillID, &beneficiary.Name, &share, &beneficiary.CreatedAt)
	if err != nil {
		return nil, mapRowError(err, "find beneficiary")
	}
	beneficiary.Share = uint64(share)
	if beneficiary.ID, err = id.ParseBeneficiaryID(rawID); err != nil {
		return nil, err
	}
	if beneficiary.WillID, err = id.ParseWillID(rawWillID); err != nil {
		return nil, err
	}
	return &beneficiary, nil
}

func (s *Store) ListBeneficiaries(ctx context.Context) ([]*models.Beneficiary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, will_id, name, share, created_at FROM beneficiaries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list beneficiaries: %w", err)
	}
	defer rows.Close()

	beneficiaries := []*models.Beneficiary{}
	for rows.Next() {
		var beneficiary models.Beneficiary
		var rawID, rawWillID string
		var share int64
		if err := rows.Scan(&rawID, &rawWillID, &beneficiary.Name, &share, &beneficiary.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan beneficiary: %w", err)
		}
		beneficiary.Share = uint64(share)
		if beneficiary.ID, err = id.ParseBeneficiaryID(rawID); err != nil {
			return nil, err
		}
		if beneficiary.WillID, err = id.ParseWillID(rawWillID); err != nil {
			return nil, err
		}
		beneficiaries = append(beneficiaries, &beneficiary)
	}
	return beneficiaries, rows.Err()
}

// withWill runs fn inside a transaction with the will row selected FOR
// UPDATE, so concurrent attach operations on the same will serialize.
func (s *Store) withWill(ctx context.Context, willID id.WillID, fn func(tx pgx.Tx, will *models.Will) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	will, err := scanWill(tx.QueryRow(ctx,
		`SELECT id, user_id, executor_id, assets, beneficiaries, created_at, is_executed
		 FROM wills WHERE id = $1 FOR UPDATE`, willID.String()))
	if err != nil {
		return err
	}
	if err := fn(tx, will); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// row abstracts pgx.Row and pgx.Rows for shared scanning.
type row interface {
	Scan(dest ...any) error
}

func scanWill(r row) (*models.Will, error) {
	var will models.Will
	var rawID, rawUserID, rawExecutorID string
	var assets, beneficiaries []byte
	err := r.Scan(&rawID, &rawUserID, &rawExecutorID, &assets, &beneficiaries,
		&will.CreatedAt, &will.IsExecuted)
	if err != nil {
		return nil, mapRowError(err, "find will")
	}
	if will.ID, err = id.ParseWillID(rawID); err != nil {
		return nil, err
	}
	if will.UserID, err = id.ParseUserID(rawUserID); err != nil {
		return nil, err
	}
	if will.ExecutorID, err = id.ParseExecutorID(rawExecutorID); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(assets, &will.Assets); err != nil {
		return nil, fmt.Errorf("unmarshal assets: %w", err)
	}
	if err := json.Unmarshal(beneficiaries, &will.Beneficiaries); err != nil {
		return nil, fmt.Errorf("unmarshal beneficiaries: %w", err)
	}
	if will.Assets == nil {
		will.Assets = []models.Asset{}
	}
	if will.Beneficiaries == nil {
		will.Beneficiaries = []models.Beneficiary{}
	}
	return &will, nil
}

func mapRowError(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
