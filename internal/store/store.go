// Package store holds the in-memory bookmark tables and their persistent
// JSON form. A process run loads the whole store, applies one mutation,
// and writes the whole store back.
package store

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// Capacities of the persisted record fields. Changing these changes the
// savefile layout, so bump them with care.
const (
	RowTagCap  = 8
	TitleMax   = 64
	CommentMax = 256
	TagNameMax = 32
)

// TimeLayout is the canonical text form of a row timestamp.
const TimeLayout = "2006-01-02 15:04:05"

// Now returns the current time in the canonical text form.
func Now() string {
	return time.Now().Format(TimeLayout)
}

// Row is one bookmark record. An ID of 0 marks a tombstoned row: logically
// deleted, skipped by iteration, dropped on encode.
type Row struct {
	ID          int
	URL         string
	Title       string
	Comment     string
	TagIDs      [RowTagCap]int
	LastUpdated string
}

// HasTag reports whether id occupies one of the row's tag slots.
func (r *Row) HasTag(id int) bool {
	for _, tid := range r.TagIDs {
		if tid == id {
			return true
		}
	}

	return false
}

// AddTag fills the first free slot with id. The row timestamp is refreshed
// on success.
func (r *Row) AddTag(id int) error {
	if r.HasTag(id) {
		return ErrAlreadyTagged
	}

	for i, tid := range r.TagIDs {
		if tid == 0 {
			r.TagIDs[i] = id
			r.Touch()

			return nil
		}
	}

	return ErrCapacityExceeded
}

// RemoveTag zeroes every slot holding id and refreshes the row timestamp.
// Reports whether the row held the tag at all.
func (r *Row) RemoveTag(id int) bool {
	removed := false

	for i, tid := range r.TagIDs {
		if tid == id && id != 0 {
			r.TagIDs[i] = 0
			removed = true
		}
	}

	if removed {
		r.Touch()
	}

	return removed
}

// TagNames resolves the row's occupied slots against the registry.
// Orphaned references (no live tag with that id) are skipped.
func (r *Row) TagNames(tags *Registry) []string {
	var names []string

	for _, tid := range r.TagIDs {
		if tid == 0 {
			continue
		}

		if tag := tags.Get(tid); tag != nil {
			names = append(names, tag.Name)
		}
	}

	return names
}

// Touch stamps the row with the current time.
func (r *Row) Touch() {
	r.LastUpdated = Now()
}

// Tag is one registry entry. An ID of 0 marks a tombstoned tag.
type Tag struct {
	ID   int
	Name string
}

// Table is the bookmark table: rows in insertion order plus the id
// allocator. IDs only ever grow and are never reused within a run.
type Table struct {
	Rows   []Row
	NextID int
}

// Add appends a new row, truncating title and comment to their maximums
// and filling tag slots positionally from tagIDs.
func (t *Table) Add(url, title, comment string, tagIDs []int) (int, error) {
	if len(tagIDs) > RowTagCap {
		return 0, ErrCapacityExceeded
	}

	row := Row{
		ID:      t.NextID,
		URL:     url,
		Title:   Truncate(title, TitleMax),
		Comment: Truncate(comment, CommentMax),
	}
	copy(row.TagIDs[:], tagIDs)
	row.Touch()

	t.Rows = append(t.Rows, row)
	t.NextID++

	return row.ID, nil
}

// Get returns the live row with the given id, or nil.
func (t *Table) Get(id int) *Row {
	if id == 0 {
		return nil
	}

	for i := range t.Rows {
		if t.Rows[i].ID == id {
			return &t.Rows[i]
		}
	}

	return nil
}

// Remove tombstones the row with the given id.
func (t *Table) Remove(id int) error {
	row := t.Get(id)
	if row == nil {
		return fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}

	row.ID = 0

	return nil
}

// Live iterates the non-tombstoned rows in table order. The sequence is
// restartable: ranging over it again replays from the start.
func (t *Table) Live() iter.Seq[*Row] {
	return func(yield func(*Row) bool) {
		for i := range t.Rows {
			if t.Rows[i].ID == 0 {
				continue
			}

			if !yield(&t.Rows[i]) {
				return
			}
		}
	}
}

// Registry is the tag table.
type Registry struct {
	Tags   []Tag
	NextID int
}

// Add validates and normalizes name, then registers it under a fresh id.
// Duplicate names are permitted.
func (g *Registry) Add(name string) (int, error) {
	normalized, err := ValidateTagName(name)
	if err != nil {
		return 0, err
	}

	g.Tags = append(g.Tags, Tag{ID: g.NextID, Name: normalized})
	g.NextID++

	return g.NextID - 1, nil
}

// Get returns the live tag with the given id, or nil.
func (g *Registry) Get(id int) *Tag {
	if id == 0 {
		return nil
	}

	for i := range g.Tags {
		if g.Tags[i].ID == id {
			return &g.Tags[i]
		}
	}

	return nil
}

// GetByName returns the first live tag whose name matches case-insensitively,
// or nil. Names are not unique; first match in registry order wins.
func (g *Registry) GetByName(name string) *Tag {
	for i := range g.Tags {
		if g.Tags[i].ID != 0 && strings.EqualFold(g.Tags[i].Name, name) {
			return &g.Tags[i]
		}
	}

	return nil
}

// Resolve maps a user token to a tag id. A token consisting entirely of
// digits is taken as an id verbatim, without checking that such a tag
// exists (orphaned references are legal). Anything else must match a live
// tag name.
func (g *Registry) Resolve(token string) (int, error) {
	if isAllDigits(token) {
		id, err := strconv.Atoi(token)
		if err != nil || id < 1 {
			return 0, fmt.Errorf("%w: %s", ErrInvalidTagID, token)
		}

		return id, nil
	}

	tag := g.GetByName(token)
	if tag == nil {
		return 0, fmt.Errorf("%w: %s", ErrTagNotFound, token)
	}

	return tag.ID, nil
}

// ResolveExisting is Resolve, except numeric ids must also refer to a
// live tag.
func (g *Registry) ResolveExisting(token string) (*Tag, error) {
	if isAllDigits(token) {
		id, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTagID, token)
		}

		tag := g.Get(id)
		if tag == nil {
			return nil, fmt.Errorf("%w: %s", ErrTagNotFound, token)
		}

		return tag, nil
	}

	tag := g.GetByName(token)
	if tag == nil {
		return nil, fmt.Errorf("%w: %s", ErrTagNotFound, token)
	}

	return tag, nil
}

// Live iterates the non-tombstoned tags in registry order.
func (g *Registry) Live() iter.Seq[*Tag] {
	return func(yield func(*Tag) bool) {
		for i := range g.Tags {
			if g.Tags[i].ID == 0 {
				continue
			}

			if !yield(&g.Tags[i]) {
				return
			}
		}
	}
}

// Store is the whole persisted state: the tag registry and the bookmark
// table.
type Store struct {
	Tags  Registry
	Table Table
}

// New returns an empty store with both id allocators at 1.
func New() *Store {
	return &Store{
		Tags:  Registry{NextID: 1},
		Table: Table{NextID: 1},
	}
}

// RemoveTag tombstones the tag and zeroes its id from every row that holds
// it, refreshing those rows' timestamps. Rows that never held the tag are
// untouched.
func (s *Store) RemoveTag(id int) error {
	tag := s.Tags.Get(id)
	if tag == nil {
		return fmt.Errorf("%w: %d", ErrTagNotFound, id)
	}

	for row := range s.Table.Live() {
		row.RemoveTag(id)
	}

	tag.ID = 0

	return nil
}

// reservedTagNames are command words a tag must not shadow.
var reservedTagNames = []string{"add", "update", "rename", "remove"}

// ValidateTagName checks name against the tag naming rules and returns the
// normalized form: internal spaces become hyphens.
func ValidateTagName(name string) (string, error) {
	if name == "" {
		return "", ErrTagNameEmpty
	}

	if name[0] >= '0' && name[0] <= '9' {
		return "", fmt.Errorf("%w: %s", ErrTagNameDigit, name)
	}

	for _, reserved := range reservedTagNames {
		if strings.EqualFold(name, reserved) {
			return "", fmt.Errorf("%w: %s", ErrTagNameReserved, name)
		}
	}

	if len([]rune(name)) > TagNameMax {
		return "", fmt.Errorf("%w: %s", ErrTagNameTooLong, name)
	}

	return strings.ReplaceAll(name, " ", "-"), nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}
