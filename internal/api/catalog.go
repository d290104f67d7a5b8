package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"erepo/pkg/domain"
)

// Categories lists every bibliographic category.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := c.getJSON(ctx, "/categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// GetCategory fetches a single category.
func (c *Client) GetCategory(ctx context.Context, id int) (domain.Category, error) {
	var cat domain.Category
	if err := c.getJSON(ctx, fmt.Sprintf("/categories/%d", id), nil, &cat); err != nil {
		return domain.Category{}, err
	}
	return cat, nil
}

// CategoryPayload carries the editable category fields.
type CategoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

// CreateCategory adds a category. Admin only.
func (c *Client) CreateCategory(ctx context.Context, p CategoryPayload) (domain.Category, error) {
	var cat domain.Category
	if err := c.sendJSON(ctx, http.MethodPost, "/categories", p, &cat); err != nil {
		return domain.Category{}, err
	}
	return cat, nil
}

// UpdateCategory replaces a category. Admin only.
func (c *Client) UpdateCategory(ctx context.Context, id int, p CategoryPayload) (domain.Category, error) {
	var cat domain.Category
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), p, &cat); err != nil {
		return domain.Category{}, err
	}
	return cat, nil
}

// DeleteCategory removes a category. Admin only.
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/categories/%d", id))
}

// SearchAuthors searches the aggregated author index.
func (c *Client) SearchAuthors(ctx context.Context, query string) ([]domain.Author, error) {
	q := url.Values{}
	if query != "" {
		q.Set("query", query)
	}
	var resp struct {
		Authors []domain.Author `json:"authors"`
	}
	if err := c.getJSON(ctx, "/authors/search", q, &resp); err != nil {
		return nil, err
	}
	return resp.Authors, nil
}

// AuthorWorks fetches every book and paper published under one name.
func (c *Client) AuthorWorks(ctx context.Context, name string) (domain.AuthorDetail, error) {
	var detail domain.AuthorDetail
	path := "/authors/" + url.PathEscape(name) + "/works"
	if err := c.getJSON(ctx, path, nil, &detail); err != nil {
		return domain.AuthorDetail{}, err
	}
	return detail, nil
}
