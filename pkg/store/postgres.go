package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements DocumentStore on top of a pgx connection pool.
// Schema lives in pkg/pg migrations (templates and snippets tables with a
// unique (tenant_id, lower(name)) index each).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an established connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (s *PostgresStore) CreateTemplate(ctx context.Context, tpl *Template) error {
	if tpl == nil {
		return ErrNilDocument
	}
	if tpl.ID == uuid.Nil {
		tpl.ID = uuid.New()
	}
	now := time.Now().UTC()
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = now
	}
	tpl.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO templates (id, tenant_id, name, category, tags, visual_mode, snippets, content_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		tpl.ID, tpl.TenantID, tpl.Name, tpl.Category, tpl.Tags, tpl.VisualMode, tpl.Snippets, tpl.ContentKey, tpl.CreatedAt, tpl.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return errors.Join(ErrFailedToCreateDocument, err)
	}
	return nil
}

func (s *PostgresStore) UpdateTemplate(ctx context.Context, tpl *Template) error {
	if tpl == nil {
		return ErrNilDocument
	}
	tpl.UpdatedAt = time.Now().UTC()

	tag, err := s.pool.Exec(ctx, `
		UPDATE templates
		SET name = $3, category = $4, tags = $5, visual_mode = $6, snippets = $7, content_key = $8, updated_at = $9
		WHERE id = $1 AND tenant_id = $2`,
		tpl.ID, tpl.TenantID, tpl.Name, tpl.Category, tpl.Tags, tpl.VisualMode, tpl.Snippets, tpl.ContentKey, tpl.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return errors.Join(ErrFailedToUpdateDocument, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (s *PostgresStore) GetTemplate(ctx context.Context, tenantID, id uuid.UUID) (*Template, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, category, tags, visual_mode, snippets, content_key, created_at, updated_at
		FROM templates WHERE id = $1 AND tenant_id = $2`, id, tenantID)

	var tpl Template
	err := row.Scan(&tpl.ID, &tpl.TenantID, &tpl.Name, &tpl.Category, &tpl.Tags, &tpl.VisualMode, &tpl.Snippets, &tpl.ContentKey, &tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, errors.Join(ErrFailedToQueryDocuments, err)
	}
	return &tpl, nil
}

func (s *PostgresStore) ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]Template, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, name, category, tags, visual_mode, snippets, content_key, created_at, updated_at
		FROM templates WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, errors.Join(ErrFailedToQueryDocuments, err)
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		var tpl Template
		if err := rows.Scan(&tpl.ID, &tpl.TenantID, &tpl.Name, &tpl.Category, &tpl.Tags, &tpl.VisualMode, &tpl.Snippets, &tpl.ContentKey, &tpl.CreatedAt, &tpl.UpdatedAt); err != nil {
			return nil, errors.Join(ErrFailedToQueryDocuments, err)
		}
		out = append(out, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToQueryDocuments, err)
	}
	return out, nil
}

func (s *PostgresStore) CreateSnippet(ctx context.Context, sn *Snippet) error {
	if sn == nil {
		return ErrNilDocument
	}
	if sn.ID == uuid.Nil {
		sn.ID = uuid.New()
	}
	now := time.Now().UTC()
	if sn.CreatedAt.IsZero() {
		sn.CreatedAt = now
	}
	sn.UpdatedAt = now

	params, err := json.Marshal(sn.Parameters)
	if err != nil {
		return errors.Join(ErrFailedToCreateDocument, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO snippets (id, tenant_id, name, parameters, content_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sn.ID, sn.TenantID, sn.Name, params, sn.ContentKey, sn.CreatedAt, sn.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return errors.Join(ErrFailedToCreateDocument, err)
	}
	return nil
}

func (s *PostgresStore) GetSnippet(ctx context.Context, tenantID, id uuid.UUID) (*Snippet, error) {
	return s.scanSnippet(s.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, parameters, content_key, created_at, updated_at
		FROM snippets WHERE id = $1 AND tenant_id = $2`, id, tenantID))
}

func (s *PostgresStore) FindSnippetByName(ctx context.Context, tenantID uuid.UUID, name string) (*Snippet, error) {
	// Matches the case-insensitive uniqueness index on (tenant_id, lower(name)).
	return s.scanSnippet(s.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, parameters, content_key, created_at, updated_at
		FROM snippets WHERE tenant_id = $1 AND lower(name) = lower($2)`, tenantID, name))
}

func (s *PostgresStore) ListSnippets(ctx context.Context, tenantID uuid.UUID) ([]Snippet, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, name, parameters, content_key, created_at, updated_at
		FROM snippets WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, errors.Join(ErrFailedToQueryDocuments, err)
	}
	defer rows.Close()

	var out []Snippet
	for rows.Next() {
		var (
			sn     Snippet
			params []byte
		)
		if err := rows.Scan(&sn.ID, &sn.TenantID, &sn.Name, &params, &sn.ContentKey, &sn.CreatedAt, &sn.UpdatedAt); err != nil {
			return nil, errors.Join(ErrFailedToQueryDocuments, err)
		}
		if len(params) > 0 {
			if err := json.Unmarshal(params, &sn.Parameters); err != nil {
				return nil, errors.Join(ErrFailedToQueryDocuments, err)
			}
		}
		out = append(out, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToQueryDocuments, err)
	}
	return out, nil
}

func (s *PostgresStore) CountTemplates(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM templates WHERE tenant_id = $1`, tenantID).Scan(&n); err != nil {
		return 0, errors.Join(ErrFailedToCountDocuments, err)
	}
	return n, nil
}

func (s *PostgresStore) CountSnippets(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM snippets WHERE tenant_id = $1`, tenantID).Scan(&n); err != nil {
		return 0, errors.Join(ErrFailedToCountDocuments, err)
	}
	return n, nil
}

func (s *PostgresStore) scanSnippet(row pgx.Row) (*Snippet, error) {
	var (
		sn     Snippet
		params []byte
	)
	err := row.Scan(&sn.ID, &sn.TenantID, &sn.Name, &params, &sn.ContentKey, &sn.CreatedAt, &sn.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSnippetNotFound
		}
		return nil, errors.Join(ErrFailedToQueryDocuments, err)
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &sn.Parameters); err != nil {
			return nil, errors.Join(ErrFailedToQueryDocuments, err)
		}
	}
	return &sn, nil
}
