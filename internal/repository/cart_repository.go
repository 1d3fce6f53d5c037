package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"bmg-store/internal/domain"
)

// CartRepository defines the interface for session cart data access
type CartRepository interface {
	// ListBySession returns the session's items joined with their products.
	// Items whose product no longer exists are omitted, not deleted.
	ListBySession(ctx context.Context, sessionID string) ([]*domain.CartLine, error)
	Create(ctx context.Context, item *domain.CartItem) error
	Delete(ctx context.Context, id int64) error
	DeleteBySession(ctx context.Context, sessionID string) error
	DeleteLines(ctx context.Context, sessionID string, ids []int64) (int64, error)
}

type cartRepository struct {
	db DBTX
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db DBTX) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.CartLine, error) {
	query := `
		SELECT c.id, c.session_id, c.product_id, c.quantity, c.size, c.color,
		       p.id, p.name, p.description, p.price, p.image_url, p.category, p.sizes, p.colors, p.is_new, p.created_at
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.session_id = $1
		ORDER BY c.id
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	lines := []*domain.CartLine{}
	for rows.Next() {
		line := &domain.CartLine{}
		var sizes, colors []byte

		err := rows.Scan(
			&line.ID,
			&line.SessionID,
			&line.ProductID,
			&line.Quantity,
			&line.Size,
			&line.Color,
			&line.Product.ID,
			&line.Product.Name,
			&line.Product.Description,
			&line.Product.Price,
			&line.Product.ImageURL,
			&line.Product.Category,
			&sizes,
			&colors,
			&line.Product.IsNew,
			&line.Product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		if err := json.Unmarshal(sizes, &line.Product.Sizes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sizes: %w", err)
		}
		if err := json.Unmarshal(colors, &line.Product.Colors); err != nil {
			return nil, fmt.Errorf("failed to unmarshal colors: %w", err)
		}

		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return lines, nil
}

// Create inserts a new row; adding the same variant twice yields two rows
func (r *cartRepository) Create(ctx context.Context, item *domain.CartItem) error {
	query := `
		INSERT INTO cart_items (session_id, product_id, quantity, size, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		item.SessionID,
		item.ProductID,
		item.Quantity,
		item.Size,
		item.Color,
	).Scan(&item.ID)

	if err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}

	return nil
}

// Delete removes one row; a missing id is not an error
func (r *cartRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}

func (r *cartRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// DeleteLines removes the given rows of one session and reports how many went
func (r *cartRepository) DeleteLines(ctx context.Context, sessionID string, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE session_id = $1 AND id = ANY($2)`,
		sessionID, ids,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cart lines: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}
