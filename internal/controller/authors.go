package controller

import (
	"fmt"
	"strings"
)

// AuthorList manages the ordered author tags of a book or paper form plus
// the free-text input used to add or edit one. Ordering is significant:
// it feeds citation formatting.
//
// Editing is a small state machine: Edit(i) pulls the tag at i into the
// draft; the next successful Add re-inserts at that original index rather
// than appending.
type AuthorList struct {
	names   []string
	draft   string
	editIdx int // -1 while idle
}

// NewAuthorList returns an empty author editor.
func NewAuthorList() *AuthorList {
	return &AuthorList{editIdx: -1}
}

// SetDraft replaces the input text.
func (a *AuthorList) SetDraft(s string) {
	a.draft = s
}

// Draft returns the input text.
func (a *AuthorList) Draft() string {
	return a.draft
}

// Names returns a copy of the committed tags in order.
func (a *AuthorList) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Add commits the trimmed draft. Duplicate names are rejected
// case-insensitively. While an edit is pending, the name returns to its
// original position in the list.
func (a *AuthorList) Add() error {
	name := strings.TrimSpace(a.draft)
	if name == "" {
		return nil
	}
	for _, existing := range a.names {
		if strings.EqualFold(existing, name) {
			return fmt.Errorf("author %q is already listed", name)
		}
	}
	idx := len(a.names)
	if a.editIdx >= 0 && a.editIdx < idx {
		idx = a.editIdx
	}
	a.names = append(a.names, "")
	copy(a.names[idx+1:], a.names[idx:])
	a.names[idx] = name
	a.draft = ""
	a.editIdx = -1
	return nil
}

// Edit removes the tag at index i and loads it into the draft for changes.
func (a *AuthorList) Edit(i int) error {
	if i < 0 || i >= len(a.names) {
		return fmt.Errorf("author index %d out of range", i)
	}
	a.draft = a.names[i]
	a.names = append(a.names[:i], a.names[i+1:]...)
	a.editIdx = i
	return nil
}

// Remove deletes the tag at index i.
func (a *AuthorList) Remove(i int) error {
	if i < 0 || i >= len(a.names) {
		return fmt.Errorf("author index %d out of range", i)
	}
	a.names = append(a.names[:i], a.names[i+1:]...)
	if a.editIdx > i {
		a.editIdx--
	}
	return nil
}

// All merges the committed tags with a non-empty draft for validation and
// submission. A pending-edit draft re-enters at its original index so that
// submitting mid-edit keeps the author order; duplicates are not repeated.
func (a *AuthorList) All() []string {
	out := a.Names()
	draft := strings.TrimSpace(a.draft)
	if draft == "" {
		return out
	}
	for _, existing := range out {
		if strings.EqualFold(existing, draft) {
			return out
		}
	}
	idx := len(out)
	if a.editIdx >= 0 && a.editIdx < idx {
		idx = a.editIdx
	}
	out = append(out, "")
	copy(out[idx+1:], out[idx:])
	out[idx] = draft
	return out
}

// Load populates the editor from an existing record: the first author goes
// into the input, the rest become tags, mirroring how forms open for edit.
// The pending position keeps the first author first on resubmit.
func (a *AuthorList) Load(names []string) {
	a.Reset()
	if len(names) == 0 {
		return
	}
	a.draft = names[0]
	a.names = append(a.names, names[1:]...)
	a.editIdx = 0
}

// Reset clears tags, draft and any pending edit.
func (a *AuthorList) Reset() {
	a.names = nil
	a.draft = ""
	a.editIdx = -1
}
