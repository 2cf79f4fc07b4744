package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"marketplace-backend/internal/attachment"
	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/pkg/database"
)

// DB is the pgx surface the repository needs.
// Satisfied by *pgxpool.Pool and pgxmock pools in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type postgresProductRepository struct {
	db DB
}

func NewPostgresProductRepository(db DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.stock, p.category_id,
	       p.images, p.rating, p.num_reviews, p.is_approved, p.boosted,
	       p.created_at, p.updated_at,
	       c.id, c.name
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

func (r *postgresProductRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (
			id, name, description, price, stock, category_id, images,
			rating, num_reviews, is_approved, boosted, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	images, err := marshalImages(p.Images)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.CategoryID,
		images,
		p.Rating,
		p.NumReviews,
		p.IsApproved,
		p.Boosted,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *postgresProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := productSelect + ` WHERE p.id = $1`

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	reviews, err := r.GetReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Reviews = reviews

	return p, nil
}

// likeEscaper neutralizes LIKE metacharacters so keywords stay literal
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List filters by case-insensitive substring on name; empty keyword matches
// all. Category, when set, is an exact match. No pagination on purpose.
func (r *postgresProductRepository) List(ctx context.Context, keyword string, categoryID *uuid.UUID) ([]model.Product, error) {
	query := productSelect + `
		WHERE p.name ILIKE '%' || $1 || '%' ESCAPE '\'
		  AND ($2::uuid IS NULL OR p.category_id = $2)
		ORDER BY p.created_at ASC
	`

	rows, err := r.db.Query(ctx, query, likeEscaper.Replace(keyword), categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// Top returns the highest rated products; ties keep insertion order
func (r *postgresProductRepository) Top(ctx context.Context, limit int) ([]model.Product, error) {
	query := productSelect + `
		ORDER BY p.rating DESC, p.created_at ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *postgresProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5,
		    category_id = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.CategoryID,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

func (r *postgresProductRepository) UpdateImages(ctx context.Context, id uuid.UUID, images []attachment.ImageRef) error {
	query := `UPDATE products SET images = $2, updated_at = now() WHERE id = $1`

	data, err := marshalImages(images)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, query, id, data)
	if err != nil {
		return fmt.Errorf("failed to update product images: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

func (r *postgresProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Approve flips the flag once; a second call affects zero rows
func (r *postgresProductRepository) Approve(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE products SET is_approved = true, updated_at = now()
		WHERE id = $1 AND is_approved = false
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to approve product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAlreadyApproved
	}

	return nil
}

func (r *postgresProductRepository) Boost(ctx context.Context, id uuid.UUID, amount int) (*model.Product, error) {
	query := `UPDATE products SET boosted = boosted + $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to boost product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrProductNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *postgresProductRepository) GetReviews(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	query := `
		SELECT id, product_id, user_id, name, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rev model.Review
		err := rows.Scan(
			&rev.ID,
			&rev.ProductID,
			&rev.UserID,
			&rev.Name,
			&rev.Rating,
			&rev.Comment,
			&rev.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}

	return reviews, rows.Err()
}

// AddReviewWithAggregate appends the review and the recomputed aggregate in
// one transaction, so the invariant rating == mean(reviews) never leaks.
// The product row is locked first; concurrent reviews on the same product
// serialize behind the lock and each one sees the full list it averages.
func (r *postgresProductRepository) AddReviewWithAggregate(ctx context.Context, review *model.Review) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		lockProduct := `SELECT id FROM products WHERE id = $1 FOR UPDATE`

		var locked uuid.UUID
		if err := tx.QueryRow(ctx, lockProduct, review.ProductID).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrProductNotFound
			}
			return fmt.Errorf("failed to lock product: %w", err)
		}

		insertReview := `
			INSERT INTO reviews (id, product_id, user_id, name, rating, comment, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`

		_, err := tx.Exec(ctx, insertReview,
			review.ID,
			review.ProductID,
			review.UserID,
			review.Name,
			review.Rating,
			review.Comment,
			review.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return model.ErrAlreadyReviewed
			}
			return fmt.Errorf("failed to insert review: %w", err)
		}

		rows, err := tx.Query(ctx, `SELECT rating FROM reviews WHERE product_id = $1`, review.ProductID)
		if err != nil {
			return fmt.Errorf("failed to load review ratings: %w", err)
		}
		defer rows.Close()

		var reviews []model.Review
		for rows.Next() {
			var rev model.Review
			if err := rows.Scan(&rev.Rating); err != nil {
				return fmt.Errorf("failed to scan review rating: %w", err)
			}
			reviews = append(reviews, rev)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		rating, numReviews := model.RecomputeRating(reviews)

		updateAggregate := `
			UPDATE products SET rating = $2, num_reviews = $3, updated_at = now()
			WHERE id = $1
		`

		if _, err := tx.Exec(ctx, updateAggregate, review.ProductID, rating, numReviews); err != nil {
			return fmt.Errorf("failed to update product aggregate: %w", err)
		}

		return nil
	})
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	p := &model.Product{}
	var images []byte
	var catID *uuid.UUID
	var catName *string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.CategoryID,
		&images,
		&p.Rating,
		&p.NumReviews,
		&p.IsApproved,
		&p.Boosted,
		&p.CreatedAt,
		&p.UpdatedAt,
		&catID,
		&catName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if err := unmarshalImages(images, &p.Images); err != nil {
		return nil, err
	}
	if catID != nil && catName != nil {
		p.Category = &model.CategoryInfo{ID: *catID, Name: *catName}
	}

	return p, nil
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func marshalImages(images []attachment.ImageRef) ([]byte, error) {
	if images == nil {
		images = []attachment.ImageRef{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("failed to encode images: %w", err)
	}
	return data, nil
}

func unmarshalImages(data []byte, dest *[]attachment.ImageRef) error {
	if len(data) == 0 {
		*dest = []attachment.ImageRef{}
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode images: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
