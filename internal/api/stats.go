package api

import (
	"context"
	"fmt"

	"erepo/pkg/domain"
)

// Stats fetches the dashboard overview counters. Admin only.
func (c *Client) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	if err := c.getJSON(ctx, "/admin/stats", nil, &stats); err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

func (c *Client) monthly(ctx context.Context, path string) ([]domain.MonthlyCount, error) {
	var points []domain.MonthlyCount
	if err := c.getJSON(ctx, path, nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// UsersPerMonth returns the monthly registration series.
func (c *Client) UsersPerMonth(ctx context.Context) ([]domain.MonthlyCount, error) {
	return c.monthly(ctx, "/users-per-month")
}

// DownloadsPerMonth returns the monthly download series.
func (c *Client) DownloadsPerMonth(ctx context.Context) ([]domain.MonthlyCount, error) {
	return c.monthly(ctx, "/downloads-per-month")
}

// CitationsPerMonth returns the monthly citation series.
func (c *Client) CitationsPerMonth(ctx context.Context) ([]domain.MonthlyCount, error) {
	return c.monthly(ctx, "/citations-per-month")
}

// BooksPerMonth returns the monthly published-book series.
func (c *Client) BooksPerMonth(ctx context.Context) ([]domain.MonthlyCount, error) {
	return c.monthly(ctx, "/books-per-month")
}

// PapersPerMonth returns the monthly published-paper series.
func (c *Client) PapersPerMonth(ctx context.Context) ([]domain.MonthlyCount, error) {
	return c.monthly(ctx, "/papers-per-month")
}

// UserDownloadsPerMonth returns one user's monthly download series.
func (c *Client) UserDownloadsPerMonth(ctx context.Context, userID int) ([]domain.MonthlyCount, error) {
	return c.monthly(ctx, fmt.Sprintf("/users/%d/downloads-per-month", userID))
}

// UserCitationsPerMonth returns one user's monthly citation series.
func (c *Client) UserCitationsPerMonth(ctx context.Context, userID int) ([]domain.MonthlyCount, error) {
	return c.monthly(ctx, fmt.Sprintf("/users/%d/citations-per-month", userID))
}
