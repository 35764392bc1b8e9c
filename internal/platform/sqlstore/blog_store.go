package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/platform/logger"
	"github.com/phrazzld/bloglist-api/internal/store"
)

// BlogStore implements store.BlogStore on a SQL database.
type BlogStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewBlogStore creates a BlogStore. It accepts a database connection or
// transaction managed by the caller. If logger is nil, slog.Default is used.
func NewBlogStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *BlogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &BlogStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "blog_store")),
	}
}

// Ensure BlogStore implements store.BlogStore interface
var _ store.BlogStore = (*BlogStore)(nil)

const blogColumns = `id, title, author, url, likes, owner_id, created_at, updated_at`

// Create implements store.BlogStore.Create.
// Negative likes and unknown owners are rejected with store.ErrInvalidEntity.
func (s *BlogStore) Create(ctx context.Context, blog *domain.Blog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := blog.Validate(); err != nil {
		log.Warn("blog validation failed during create",
			slog.String("error", err.Error()),
			slog.String("blog_id", blog.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := s.dialect.Rebind(`
		INSERT INTO blogs (` + blogColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := s.db.ExecContext(ctx, query,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		blog.OwnerID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrInvalidEntity) {
			log.Warn("blog rejected by constraint",
				slog.String("error", err.Error()),
				slog.String("blog_id", blog.ID.String()),
				slog.String("owner_id", blog.OwnerID.String()))
			return mapped
		}
		log.Error("failed to create blog",
			slog.String("error", err.Error()),
			slog.String("blog_id", blog.ID.String()))
		return mapped
	}

	log.Info("blog created successfully",
		slog.String("blog_id", blog.ID.String()),
		slog.String("owner_id", blog.OwnerID.String()))
	return nil
}

// GetByID implements store.BlogStore.GetByID.
func (s *BlogStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind(`SELECT ` + blogColumns + ` FROM blogs WHERE id = ?`)

	blog, err := scanBlog(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("blog not found", slog.String("blog_id", id.String()))
			return nil, store.ErrBlogNotFound
		}
		log.Error("failed to get blog by ID",
			slog.String("error", err.Error()),
			slog.String("blog_id", id.String()))
		return nil, MapError(err)
	}

	return blog, nil
}

// List implements store.BlogStore.List.
func (s *BlogStore) List(ctx context.Context) ([]*domain.Blog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + blogColumns + ` FROM blogs ORDER BY ` + s.dialect.orderColumn

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list blogs", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	blogs := []*domain.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, store.NewStoreError("blog", "list", "failed to scan row", err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("blog", "list", "failed to iterate rows", err)
	}

	log.Debug("listed blogs", slog.Int("count", len(blogs)))
	return blogs, nil
}

// Update implements store.BlogStore.Update. Only title, author, url and likes
// are written; blog.UpdatedAt is refreshed on success.
func (s *BlogStore) Update(ctx context.Context, blog *domain.Blog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := blog.Validate(); err != nil {
		log.Warn("blog validation failed during update",
			slog.String("error", err.Error()),
			slog.String("blog_id", blog.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	updatedAt := time.Now().UTC()
	query := s.dialect.Rebind(`
		UPDATE blogs
		SET title = ?, author = ?, url = ?, likes = ?, updated_at = ?
		WHERE id = ?
	`)
	result, err := s.db.ExecContext(ctx, query,
		blog.Title, blog.Author, blog.URL, blog.Likes, updatedAt, blog.ID)
	if err != nil {
		log.Error("failed to update blog",
			slog.String("error", err.Error()),
			slog.String("blog_id", blog.ID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrBlogNotFound); err != nil {
		log.Debug("blog not found for update", slog.String("blog_id", blog.ID.String()))
		return err
	}

	blog.UpdatedAt = updatedAt
	log.Debug("blog updated", slog.String("blog_id", blog.ID.String()))
	return nil
}

// Delete implements store.BlogStore.Delete.
func (s *BlogStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind(`DELETE FROM blogs WHERE id = ?`)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete blog",
			slog.String("error", err.Error()),
			slog.String("blog_id", id.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrBlogNotFound); err != nil {
		return err
	}

	log.Info("blog deleted", slog.String("blog_id", id.String()))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner) (*domain.Blog, error) {
	var blog domain.Blog
	if err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Author,
		&blog.URL,
		&blog.Likes,
		&blog.OwnerID,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &blog, nil
}
