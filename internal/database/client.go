package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"quickai-backend/internal/models"
)

const creationColumns = "id, user_id, prompt, content, type, publish, likes, created_at, updated_at"

// Client is the creations store. Rows are append-only except for the
// publish flag and the likes array.
type Client struct {
	db *sql.DB
}

func NewClient(connectionString string) (*Client, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

func (d *Client) CreateCreation(userID, prompt, content, creationType string, publish bool) (*models.Creation, error) {
	var creation models.Creation
	err := d.db.QueryRow(`
		INSERT INTO creations (user_id, prompt, content, type, publish)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+creationColumns+`
	`, userID, prompt, content, creationType, publish).Scan(
		&creation.ID, &creation.UserID, &creation.Prompt, &creation.Content,
		&creation.Type, &creation.Publish, &creation.Likes,
		&creation.CreatedAt, &creation.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create creation: %w", err)
	}

	return &creation, nil
}

func (d *Client) GetUserCreations(userID string) ([]models.Creation, error) {
	rows, err := d.db.Query(`
		SELECT `+creationColumns+`
		FROM creations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list creations: %w", err)
	}
	defer rows.Close()

	return scanCreations(rows)
}

// GetPublishedCreations returns the public gallery: published image
// creations, newest first.
func (d *Client) GetPublishedCreations() ([]models.Creation, error) {
	rows, err := d.db.Query(`
		SELECT ` + creationColumns + `
		FROM creations
		WHERE publish = TRUE AND type = 'image'
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list published creations: %w", err)
	}
	defer rows.Close()

	return scanCreations(rows)
}

// ToggleLike adds the user to the creation's likes, or removes them if
// already present. Returns the updated creation and whether the user now
// likes it.
func (d *Client) ToggleLike(creationID int64, userID string) (*models.Creation, bool, error) {
	var likes pq.StringArray
	err := d.db.QueryRow(`SELECT likes FROM creations WHERE id = $1`, creationID).Scan(&likes)
	if err == sql.ErrNoRows {
		return nil, false, fmt.Errorf("creation %d not found", creationID)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get creation: %w", err)
	}

	updated := make([]string, 0, len(likes)+1)
	liked := true
	for _, id := range likes {
		if id == userID {
			liked = false
			continue
		}
		updated = append(updated, id)
	}
	if liked {
		updated = append(updated, userID)
	}

	var creation models.Creation
	err = d.db.QueryRow(`
		UPDATE creations
		SET likes = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+creationColumns+`
	`, pq.StringArray(updated), creationID).Scan(
		&creation.ID, &creation.UserID, &creation.Prompt, &creation.Content,
		&creation.Type, &creation.Publish, &creation.Likes,
		&creation.CreatedAt, &creation.UpdatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update likes: %w", err)
	}

	return &creation, liked, nil
}

func scanCreations(rows *sql.Rows) ([]models.Creation, error) {
	var creations []models.Creation
	for rows.Next() {
		var creation models.Creation
		err := rows.Scan(
			&creation.ID, &creation.UserID, &creation.Prompt, &creation.Content,
			&creation.Type, &creation.Publish, &creation.Likes,
			&creation.CreatedAt, &creation.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan creation: %w", err)
		}
		creations = append(creations, creation)
	}

	return creations, rows.Err()
}

func (d *Client) Close() error {
	return d.db.Close()
}
