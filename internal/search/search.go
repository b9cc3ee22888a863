package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mserrat/tienda-api/internal/models"
)

const maxResults = 100

// Products runs a fuzzy multi_match over name and description.
func (c *Client) Products(ctx context.Context, query string) ([]models.Product, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"size": maxResults,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("search encode: %w", err)
	}

	res, err := c.ES.Search(
		c.ES.Search.WithContext(ctx),
		c.ES.Search.WithIndex(c.Index),
		c.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	products := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		products[i] = hit.Source
	}
	return products, nil
}

// IndexProducts writes the catalog into the search index, one document per
// product keyed by its id. Used after seeding.
func (c *Client) IndexProducts(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		res, err := c.ES.Index(
			c.Index,
			bytes.NewReader(data),
			c.ES.Index.WithDocumentID(fmt.Sprint(p.ID)),
			c.ES.Index.WithContext(ctx),
		)
		if err != nil {
			return fmt.Errorf("index product %d: %w", p.ID, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("index product %d: %s", p.ID, res.Status())
		}
	}
	return nil
}
