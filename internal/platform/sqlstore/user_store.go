package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/platform/logger"
	"github.com/phrazzld/bloglist-api/internal/store"
)

// UserStore implements store.UserStore on a SQL database.
// The blogs back-reference lives in the user_blogs table.
type UserStore struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

// NewUserStore creates a UserStore. If logger is nil, slog.Default is used.
func NewUserStore(db *sql.DB, dialect Dialect, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		query := s.dialect.Rebind(`
			INSERT INTO users (id, username, name, password_hash, created_at)
			VALUES (?, ?, ?, ?, ?)
		`)
		if _, err := tx.ExecContext(ctx, query,
			user.ID, user.Username, user.Name, user.HashedPassword, user.CreatedAt,
		); err != nil {
			return err
		}
		return s.writeBlogRefs(ctx, tx, user)
	})
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("username already taken", slog.String("username", user.Username))
			return store.ErrUsernameExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, "id", id)
}

// GetByUsername implements store.UserStore.GetByUsername.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getOne(ctx, "username", username)
}

func (s *UserStore) getOne(ctx context.Context, column string, value any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind(`
		SELECT id, username, name, password_hash, created_at
		FROM users
		WHERE ` + column + ` = ?
	`)

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.HashedPassword,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("by", column))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String("error", err.Error()),
			slog.String("by", column))
		return nil, MapError(err)
	}

	refs, err := s.blogRefs(ctx, &user.ID)
	if err != nil {
		return nil, err
	}
	user.Blogs = refs[user.ID]
	if user.Blogs == nil {
		user.Blogs = []uuid.UUID{}
	}

	return &user, nil
}

// Update implements store.UserStore.Update. The back-reference list is
// rewritten as a whole in the same transaction as the user row.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		query := s.dialect.Rebind(`
			UPDATE users
			SET username = ?, name = ?, password_hash = ?
			WHERE id = ?
		`)
		result, err := tx.ExecContext(ctx, query,
			user.Username, user.Name, user.HashedPassword, user.ID)
		if err != nil {
			return err
		}
		if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
			return err
		}

		del := s.dialect.Rebind(`DELETE FROM user_blogs WHERE user_id = ?`)
		if _, err := tx.ExecContext(ctx, del, user.ID); err != nil {
			return err
		}
		return s.writeBlogRefs(ctx, tx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return store.ErrUserNotFound
		}
		if IsUniqueViolation(err) {
			return store.ErrUsernameExists
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Debug("user updated",
		slog.String("user_id", user.ID.String()),
		slog.Int("blog_count", len(user.Blogs)))
	return nil
}

// AppendBlog implements store.UserStore.AppendBlog. The no-op update takes
// the user's row lock, so concurrent appends for one user queue up and each
// gets the next free position.
func (s *UserStore) AppendBlog(ctx context.Context, userID, blogID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		lock := s.dialect.Rebind(`UPDATE users SET username = username WHERE id = ?`)
		result, err := tx.ExecContext(ctx, lock, userID)
		if err != nil {
			return err
		}
		if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
			return err
		}

		insert := s.dialect.Rebind(`
			INSERT INTO user_blogs (user_id, position, blog_id)
			VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM user_blogs WHERE user_id = ?), ?)
		`)
		_, err = tx.ExecContext(ctx, insert, userID, userID, blogID)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return store.ErrUserNotFound
		}
		log.Error("failed to append blog reference",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("blog_id", blogID.String()))
		return MapError(err)
	}

	log.Debug("blog reference appended",
		slog.String("user_id", userID.String()),
		slog.String("blog_id", blogID.String()))
	return nil
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, username, name, password_hash, created_at
		FROM users
		ORDER BY ` + s.dialect.orderColumn

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	users := []*domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Name,
			&user.HashedPassword,
			&user.CreatedAt,
		); err != nil {
			return nil, store.NewStoreError("user", "list", "failed to scan row", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("user", "list", "failed to iterate rows", err)
	}

	refs, err := s.blogRefs(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		user.Blogs = refs[user.ID]
		if user.Blogs == nil {
			user.Blogs = []uuid.UUID{}
		}
	}

	return users, nil
}

// blogRefs loads back-references for one user, or for every user when
// userID is nil.
func (s *UserStore) blogRefs(ctx context.Context, userID *uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	query := `SELECT user_id, blog_id FROM user_blogs`
	var args []any
	if userID != nil {
		query += ` WHERE user_id = ?`
		args = append(args, *userID)
	}
	query += ` ORDER BY user_id, position`

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load blog references: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	refs := make(map[uuid.UUID][]uuid.UUID)
	for rows.Next() {
		var owner, blog uuid.UUID
		if err := rows.Scan(&owner, &blog); err != nil {
			return nil, fmt.Errorf("failed to scan blog reference: %w", err)
		}
		refs[owner] = append(refs[owner], blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blog references: %w", err)
	}
	return refs, nil
}

func (s *UserStore) writeBlogRefs(ctx context.Context, tx *sql.Tx, user *domain.User) error {
	if len(user.Blogs) == 0 {
		return nil
	}

	query := s.dialect.Rebind(`
		INSERT INTO user_blogs (user_id, position, blog_id)
		VALUES (?, ?, ?)
	`)
	for i, blogID := range user.Blogs {
		if _, err := tx.ExecContext(ctx, query, user.ID, i, blogID); err != nil {
			return err
		}
	}
	return nil
}
