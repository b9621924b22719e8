// Package content manages structured content blocks (text, code, poetry) and
// their persistence.
package content

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Block is one stored content block.
type Block struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository handles all content block database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// List returns all content blocks, newest first.
func (r *Repository) List(ctx context.Context) ([]Block, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, type, title, content, created_at, updated_at
		 FROM content_blocks ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list content blocks: %w", err)
	}
	defer rows.Close()

	blocks := []Block{}
	for rows.Next() {
		var b Block
		if err := rows.Scan(&b.ID, &b.Type, &b.Title, &b.Content, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan content block: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list content blocks: %w", err)
	}
	return blocks, nil
}

// Create inserts a new content block and returns the created record.
func (r *Repository) Create(ctx context.Context, blockType, title, content string) (*Block, error) {
	b := &Block{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO content_blocks (type, title, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, type, title, content, created_at, updated_at`,
		blockType, title, content,
	).Scan(&b.ID, &b.Type, &b.Title, &b.Content, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create content block: %w", err)
	}
	return b, nil
}
