package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"marketplace-backend/internal/attachment"
	"marketplace-backend/internal/domains/post/model"
)

// DB is the pgx surface the repository needs.
// Satisfied by *pgxpool.Pool and pgxmock pools in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresPostRepository struct {
	db DB
}

func NewPostgresPostRepository(db DB) PostRepository {
	return &postgresPostRepository{db: db}
}

const postSelect = `
	SELECT p.id, p.title, p.description, p.posted_by, p.images,
	       p.created_at, p.updated_at,
	       u.id, u.name
	FROM posts p
	JOIN users u ON u.id = p.posted_by
`

func (r *postgresPostRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (id, title, description, posted_by, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	images, err := marshalImages(p.Images)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.PostedBy,
		images,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *postgresPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query := postSelect + ` WHERE p.id = $1`
	return r.scanPost(r.db.QueryRow(ctx, query, id))
}

// GetAll returns every post newest first with the author embedded
func (r *postgresPostRepository) GetAll(ctx context.Context) ([]model.Post, error) {
	query := postSelect + ` ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	return r.collectPosts(rows)
}

func (r *postgresPostRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]model.Post, error) {
	query := postSelect + ` WHERE p.posted_by = $1 ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}
	defer rows.Close()

	return r.collectPosts(rows)
}

func (r *postgresPostRepository) Update(ctx context.Context, p *model.Post) error {
	query := `
		UPDATE posts
		SET title = $2, description = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, p.ID, p.Title, p.Description, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

func (r *postgresPostRepository) UpdateImages(ctx context.Context, id uuid.UUID, images []attachment.ImageRef) error {
	query := `UPDATE posts SET images = $2, updated_at = now() WHERE id = $1`

	data, err := marshalImages(images)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, query, id, data)
	if err != nil {
		return fmt.Errorf("failed to update post images: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

func (r *postgresPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

func (r *postgresPostRepository) scanPost(row pgx.Row) (*model.Post, error) {
	p := &model.Post{}
	poster := &model.PosterInfo{}
	var images []byte

	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.PostedBy,
		&images,
		&p.CreatedAt,
		&p.UpdatedAt,
		&poster.ID,
		&poster.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	p.Poster = poster
	if p.Images, err = unmarshalImages(images); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *postgresPostRepository) collectPosts(rows pgx.Rows) ([]model.Post, error) {
	posts := []model.Post{}
	for rows.Next() {
		p := model.Post{}
		poster := model.PosterInfo{}
		var images []byte

		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.PostedBy,
			&images,
			&p.CreatedAt,
			&p.UpdatedAt,
			&poster.ID,
			&poster.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}

		p.Poster = &poster
		if p.Images, err = unmarshalImages(images); err != nil {
			return nil, err
		}

		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}

	return posts, nil
}

func marshalImages(refs []attachment.ImageRef) ([]byte, error) {
	if refs == nil {
		refs = []attachment.ImageRef{}
	}
	data, err := json.Marshal(refs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode post images: %w", err)
	}
	return data, nil
}

func unmarshalImages(data []byte) ([]attachment.ImageRef, error) {
	refs := []attachment.ImageRef{}
	if len(data) == 0 {
		return refs, nil
	}
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("failed to decode post images: %w", err)
	}
	return refs, nil
}
