package api

import (
	"context"
	"fmt"
	"net/http"

	"erepo/pkg/domain"
)

// ListUsers fetches a page of the user collection. Admin only.
func (c *Client) ListUsers(ctx context.Context, p domain.SearchParams) (domain.Page[domain.User], error) {
	var page domain.Page[domain.User]
	if err := c.getJSON(ctx, "/admin/users", searchQuery(p), &page); err != nil {
		return domain.Page[domain.User]{}, err
	}
	return page, nil
}

// GetUser fetches a single user record. Admin only.
func (c *Client) GetUser(ctx context.Context, id int) (domain.User, error) {
	var user domain.User
	if err := c.getJSON(ctx, fmt.Sprintf("/admin/users/%d", id), nil, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// UserUpdate carries the fields an admin may flip on any user.
type UserUpdate struct {
	Role       domain.UserRole   `json:"role,omitempty"`
	Status     domain.UserStatus `json:"status,omitempty"`
	IsApproved *bool             `json:"is_approved,omitempty"`
}

// UpdateUser mutates role, status or approval of a user. Admin only.
func (c *Client) UpdateUser(ctx context.Context, id int, upd UserUpdate) (domain.User, error) {
	var user domain.User
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d", id), upd, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// ApproveUser flips the approval flag of a user. Admin only.
func (c *Client) ApproveUser(ctx context.Context, id int) error {
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d/approve", id), nil, nil)
}

// DeleteUser removes a user account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/admin/users/%d", id))
}

// PendingLecturers lists lecturer accounts awaiting approval. Admin only.
func (c *Client) PendingLecturers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.getJSON(ctx, "/admin/pending-lecturers", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ApproveLecturer unlocks a pending lecturer account. Admin only.
func (c *Client) ApproveLecturer(ctx context.Context, id int) error {
	return c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/admin/lecturers/%d/approve", id), nil, nil)
}

// AdminRegistration creates an account on someone's behalf, including its
// role. JSON rather than multipart: no profile picture on this path.
type AdminRegistration struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Password     string          `json:"password"`
	Role         domain.UserRole `json:"role"`
	UserType     domain.UserType `json:"user_type"`
	NIMNIDN      string          `json:"nim_nidn"`
	Faculty      string          `json:"faculty"`
	DepartmentID int             `json:"department_id"`
	Address      string          `json:"address,omitempty"`
}

// AdminRegister creates a user account as an admin.
func (c *Client) AdminRegister(ctx context.Context, reg AdminRegistration) (domain.User, error) {
	var user domain.User
	if err := c.sendJSON(ctx, http.MethodPost, "/admin/register", reg, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
