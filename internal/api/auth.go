package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"erepo/pkg/domain"
)

// Login exchanges credentials for a bearer token and user record.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error) {
	var res domain.AuthResult
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/login", creds, &res); err != nil {
		return domain.AuthResult{}, err
	}
	return res, nil
}

// Register creates an account. The payload is multipart because an optional
// profile picture rides along.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.AuthResult, error) {
	f := newForm()
	f.field("name", reg.Name)
	f.field("email", reg.Email)
	f.field("password", reg.Password)
	f.field("user_type", string(reg.UserType))
	f.field("nim_nidn", reg.NIMNIDN)
	f.field("faculty", reg.Faculty)
	f.intField("department_id", reg.DepartmentID)
	f.field("address", reg.Address)

	if reg.ProfilePicture != "" {
		pic, err := os.Open(reg.ProfilePicture)
		if err != nil {
			return domain.AuthResult{}, fmt.Errorf("open profile picture: %w", err)
		}
		defer pic.Close()
		f.file("profile_picture", filepath.Base(reg.ProfilePicture), pic)
	}

	var res domain.AuthResult
	if err := c.sendForm(ctx, http.MethodPost, "/auth/register", f, &res); err != nil {
		return domain.AuthResult{}, err
	}
	return res, nil
}

// Profile probes the "who am I" endpoint. A 401 here does not trigger the
// global invalidation hook: an expired stored token at startup is expected
// and unauthenticated browsing stays valid.
func (c *Client) Profile(ctx context.Context) (domain.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/profile", nil)
	if err != nil {
		return domain.User{}, err
	}
	var user domain.User
	if err := c.do(req, &user, doOptions{skipUnauthorizedHook: true}); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name         string
	Email        string
	NIMNIDN      string
	Faculty      string
	DepartmentID int
	Address      string

	PictureName string
	Picture     io.Reader
}

// UpdateProfile replaces profile fields via multipart PUT.
func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (domain.User, error) {
	f := newForm()
	f.field("name", upd.Name)
	f.field("email", upd.Email)
	f.field("nim_nidn", upd.NIMNIDN)
	f.field("faculty", upd.Faculty)
	f.intField("department_id", upd.DepartmentID)
	f.field("address", upd.Address)
	f.file("profile_picture", upd.PictureName, upd.Picture)

	var user domain.User
	if err := c.sendForm(ctx, http.MethodPut, "/profile", f, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// ChangePassword rotates the caller's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	payload := map[string]string{
		"current_password": current,
		"new_password":     next,
	}
	return c.sendJSON(ctx, http.MethodPut, "/profile/password", payload, nil)
}

// ForgotPassword requests a reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	return c.sendJSON(ctx, http.MethodPost, "/auth/forgot-password", payload, nil)
}

// ResetPassword redeems a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	payload := map[string]string{
		"token":        token,
		"new_password": newPassword,
	}
	return c.sendJSON(ctx, http.MethodPost, "/auth/reset-password", payload, nil)
}

// Departments lists departments, optionally filtered by faculty. Forms
// refetch this whenever the selected faculty changes.
func (c *Client) Departments(ctx context.Context, faculty string) ([]domain.Department, error) {
	q := url.Values{}
	if faculty != "" {
		q.Set("faculty", faculty)
	}
	var deps []domain.Department
	if err := c.getJSON(ctx, "/departments", q, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}
