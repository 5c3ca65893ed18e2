package store

import (
	"context"
	"fmt"
)

// Image is one row of the image table. Row order gives each image its role
// on the page.
type Image struct {
	ID          int64  `json:"id"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// ListImages returns every image ordered by id.
func (s *Store) ListImages(ctx context.Context) ([]Image, error) {
	query := fmt.Sprintf(`SELECT id, url, COALESCE(description, '') FROM %s ORDER BY id`, s.quotedTable())

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &StoreError{Op: "select images", Err: classify(err)}
	}
	defer rows.Close()

	images := []Image{}
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.URL, &img.Description); err != nil {
			return nil, &StoreError{Op: "scan image", Err: err}
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "iterate images", Err: classify(err)}
	}

	return images, nil
}
