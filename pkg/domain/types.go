package domain

import (
	"fmt"
	"math"
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type UserType string

const (
	TypeStudent  UserType = "student"
	TypeLecturer UserType = "lecturer"
)

type UserStatus string

const (
	StatusPending  UserStatus = "pending"
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

type User struct {
	ID                int        `json:"id"`
	Email             string     `json:"email"`
	Name              string     `json:"name"`
	NIMNIDN           string     `json:"nim_nidn,omitempty"`
	Faculty           string     `json:"faculty,omitempty"`
	DepartmentID      int        `json:"department_id,omitempty"`
	UserType          UserType   `json:"user_type"`
	Role              UserRole   `json:"role"`
	Status            UserStatus `json:"status"`
	EmailVerified     bool       `json:"email_verified"`
	IsApproved        bool       `json:"is_approved"`
	ProfilePictureURL string     `json:"profile_picture_url,omitempty"`
	Address           string     `json:"address,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// WorkAuthor is one contributor of a book or paper. Order within the
// authors slice is significant: it drives citation formatting.
type WorkAuthor struct {
	ID         int    `json:"id"`
	AuthorName string `json:"author_name"`
}

type Book struct {
	ID            int          `json:"id"`
	Title         string       `json:"title"`
	Author        string       `json:"author"`
	Authors       []WorkAuthor `json:"authors,omitempty"`
	Publisher     string       `json:"publisher,omitempty"`
	PublishedYear int          `json:"published_year,omitempty"`
	ISBN          string       `json:"isbn,omitempty"`
	Subject       string       `json:"subject,omitempty"`
	Language      string       `json:"language,omitempty"`
	Pages         int          `json:"pages,omitempty"`
	Summary       string       `json:"summary,omitempty"`
	FileURL       string       `json:"file_url,omitempty"`
	CoverImageURL string       `json:"cover_image_url,omitempty"`
	CitationCount int          `json:"citation_count,omitempty"`
	CreatedBy     int          `json:"created_by,omitempty"`
	Categories    []Category   `json:"categories,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type Paper struct {
	ID            int          `json:"id"`
	Title         string       `json:"title"`
	Author        string       `json:"author"`
	Authors       []WorkAuthor `json:"authors,omitempty"`
	Abstract      string       `json:"abstract"`
	Keywords      string       `json:"keywords,omitempty"`
	Journal       string       `json:"journal,omitempty"`
	Volume        int          `json:"volume,omitempty"`
	Issue         int          `json:"issue,omitempty"`
	Pages         string       `json:"pages,omitempty"`
	Year          int          `json:"year,omitempty"`
	DOI           string       `json:"doi,omitempty"`
	ISSN          string       `json:"issn,omitempty"`
	Advisor       string       `json:"advisor,omitempty"`
	University    string       `json:"university,omitempty"`
	Department    string       `json:"department,omitempty"`
	FileURL       string       `json:"file_url,omitempty"`
	CoverImageURL string       `json:"cover_image_url,omitempty"`
	CitationCount int          `json:"citation_count,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Department struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Faculty string `json:"faculty"`
}

// Author aggregates every work published under one name.
type Author struct {
	Name       string `json:"name"`
	BookCount  int    `json:"bookCount"`
	PaperCount int    `json:"paperCount"`
}

type AuthorDetail struct {
	Name   string  `json:"name"`
	Books  []Book  `json:"books"`
	Papers []Paper `json:"papers"`
}

// Page is the envelope every collection endpoint returns.
// Page is 1-indexed and len(Data) never exceeds Limit.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// PageCount returns TotalPages, recomputed from Total and Limit when the
// backend omitted it.
func (p Page[T]) PageCount() int {
	if p.TotalPages > 0 {
		return p.TotalPages
	}
	if p.Limit <= 0 || p.Total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(p.Total) / float64(p.Limit)))
}

// MonthlyCount is one point of a per-month statistics series.
type MonthlyCount struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Count int `json:"count"`
}

// Label renders the point as YYYY-MM.
func (m MonthlyCount) Label() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// SearchParams carries the query string parameters of list endpoints.
// Zero values are omitted from the request.
type SearchParams struct {
	Query    string
	Type     string
	Category string
	Year     int
	ISBN     string
	ISSN     string
	Page     int
	Limit    int
	Sort     string
}

// Credentials identifies a user by email or NIM/NIDN plus password.
type Credentials struct {
	Email    string `json:"email,omitempty"`
	NIMNIDN  string `json:"nim_nidn,omitempty"`
	Password string `json:"password"`
}

// Registration is the multipart payload of /auth/register.
type Registration struct {
	Name         string
	Email        string
	Password     string
	UserType     UserType
	NIMNIDN      string
	Faculty      string
	DepartmentID int
	Address      string

	// ProfilePicture is a local file path, attached when non-empty.
	ProfilePicture string
}

// AuthResult is returned by login and register.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ExtractedMetadata is what the metadata-extraction helper returns for an
// uploaded document. Confidence is in [0,1].
type ExtractedMetadata struct {
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Abstract   string  `json:"abstract,omitempty"`
	Keywords   string  `json:"keywords,omitempty"`
	Publisher  string  `json:"publisher,omitempty"`
	Year       int     `json:"year,omitempty"`
	ISBN       string  `json:"isbn,omitempty"`
	ISSN       string  `json:"issn,omitempty"`
	Journal    string  `json:"journal,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Stats is the overview card block of the admin dashboard.
type Stats struct {
	TotalBooks     int `json:"totalBooks"`
	TotalPapers    int `json:"totalPapers"`
	TotalDownloads int `json:"totalDownloads"`
	TotalCitations int `json:"totalCitations"`
	TotalUsers     int `json:"totalUsers,omitempty"`
}
