package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// rowFieldCount is the fixed width of a persisted row value:
// [url, title, comment, last_updated, [tag ids]].
const rowFieldCount = 5

// Decode parses the persisted document into a store. The format is strict:
// a single object whose first key is "tags" (id -> name) and whose second
// and last key is "rows" (id -> 5-element array). Any structural deviation
// is an ErrDecode; the caller decides whether that is fatal.
//
// Both id allocators are set to one past the highest id seen, or 1 for an
// empty collection.
func Decode(data []byte) (*Store, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if err := expectKey(dec, "tags"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	store := New()

	if err := decodeTags(dec, &store.Tags); err != nil {
		return nil, fmt.Errorf("%w: tags: %w", ErrDecode, err)
	}

	if err := expectKey(dec, "rows"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if err := decodeRows(dec, &store.Table); err != nil {
		return nil, fmt.Errorf("%w: rows: %w", ErrDecode, err)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("%w: expected exactly two top-level keys: %w", ErrDecode, err)
	}

	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after document", ErrDecode)
	}

	return store, nil
}

func decodeTags(dec *json.Decoder, tags *Registry) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	maxID := 0

	for dec.More() {
		id, err := decodeIDKey(dec)
		if err != nil {
			return err
		}

		name, err := decodeString(dec)
		if err != nil {
			return fmt.Errorf("tag %d: %w", id, err)
		}

		tags.Tags = append(tags.Tags, Tag{ID: id, Name: clamp(name, TagNameMax)})
		maxID = max(maxID, id)
	}

	tags.NextID = maxID + 1

	return expectDelim(dec, '}')
}

func decodeRows(dec *json.Decoder, table *Table) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	maxID := 0

	for dec.More() {
		id, err := decodeIDKey(dec)
		if err != nil {
			return err
		}

		row, err := decodeRow(dec)
		if err != nil {
			return fmt.Errorf("row %d: %w", id, err)
		}

		row.ID = id
		table.Rows = append(table.Rows, row)
		maxID = max(maxID, id)
	}

	table.NextID = maxID + 1

	return expectDelim(dec, '}')
}

// decodeRow reads the fixed 5-element array form of a row. The nested tag
// array may hold fewer than RowTagCap entries; missing slots stay 0.
func decodeRow(dec *json.Decoder) (Row, error) {
	if err := expectDelim(dec, '['); err != nil {
		return Row{}, err
	}

	fields := make([]string, 0, rowFieldCount-1)

	for range rowFieldCount - 1 {
		field, err := decodeString(dec)
		if err != nil {
			return Row{}, fmt.Errorf("field %d: %w", len(fields), err)
		}

		fields = append(fields, field)
	}

	timestamp := fields[3]
	if _, err := time.Parse(TimeLayout, timestamp); err != nil {
		return Row{}, fmt.Errorf("bad timestamp %q", timestamp)
	}

	row := Row{
		URL:         fields[0],
		Title:       clamp(fields[1], TitleMax),
		Comment:     clamp(fields[2], CommentMax),
		LastUpdated: timestamp,
	}

	if err := decodeTagSlots(dec, &row); err != nil {
		return Row{}, err
	}

	// A well-formed row value ends right after the tag array.
	if err := expectDelim(dec, ']'); err != nil {
		return Row{}, fmt.Errorf("expected %d fields: %w", rowFieldCount, err)
	}

	return row, nil
}

func decodeTagSlots(dec *json.Decoder, row *Row) error {
	if err := expectDelim(dec, '['); err != nil {
		return fmt.Errorf("tag slots: %w", err)
	}

	slot := 0

	for dec.More() {
		raw, err := decodeString(dec)
		if err != nil {
			return fmt.Errorf("tag slot %d: %w", slot, err)
		}

		id, err := strconv.Atoi(raw)
		if err != nil || id < 0 {
			return fmt.Errorf("tag slot %d: bad id %q", slot, raw)
		}

		if slot >= RowTagCap {
			return fmt.Errorf("more than %d tag slots", RowTagCap)
		}

		row.TagIDs[slot] = id
		slot++
	}

	return expectDelim(dec, ']')
}

// Encode renders the store back into the on-disk document: the two-key
// object with tombstones dropped and the tag-slot array always emitted at
// fixed width. Encode is the left inverse of Decode.
func Encode(s *Store) []byte {
	var buf bytes.Buffer

	buf.WriteString("{\n\t\"tags\": {\n")

	first := true
	for tag := range s.Tags.Live() {
		if !first {
			buf.WriteString(",\n")
		}

		first = false

		fmt.Fprintf(&buf, "\t\t\"%d\": %s", tag.ID, jsonString(tag.Name))
	}

	buf.WriteString("\n\t},\n\t\"rows\": {\n")

	first = true
	for row := range s.Table.Live() {
		if !first {
			buf.WriteString(",\n")
		}

		first = false

		fmt.Fprintf(&buf, "\t\t\"%d\": [%s, %s, %s, %s, [",
			row.ID,
			jsonString(row.URL),
			jsonString(row.Title),
			jsonString(row.Comment),
			jsonString(row.LastUpdated))

		for i, tid := range row.TagIDs {
			if i > 0 {
				buf.WriteString(", ")
			}

			fmt.Fprintf(&buf, "\"%d\"", tid)
		}

		buf.WriteString("]]")
	}

	buf.WriteString("\n\t}\n}\n")

	return buf.Bytes()
}

func jsonString(s string) []byte {
	data, err := json.Marshal(s)
	if err != nil {
		// Marshaling a string cannot fail.
		panic(err)
	}

	return data
}

// clamp cuts s to max runes with no ellipsis marking, mirroring how the
// fixed-size record fields behave on load.
func clamp(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return fmt.Errorf("unexpected end of document")
		}

		return err
	}

	delim, ok := tok.(json.Delim)
	if !ok || rune(delim) != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}

	return nil
}

func expectKey(dec *json.Decoder, want string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	key, ok := tok.(string)
	if !ok {
		return fmt.Errorf("expected %q key, got %v", want, tok)
	}

	if key != want {
		return fmt.Errorf("expected %q key, got %q", want, key)
	}

	return nil
}

func decodeIDKey(dec *json.Decoder) (int, error) {
	tok, err := dec.Token()
	if err != nil {
		return 0, err
	}

	key, ok := tok.(string)
	if !ok {
		return 0, fmt.Errorf("expected id key, got %v", tok)
	}

	id, err := strconv.Atoi(key)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("bad id key %q", key)
	}

	return id, nil
}

func decodeString(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return "", fmt.Errorf("unexpected end of document")
		}

		return "", err
	}

	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %v", tok)
	}

	return s, nil
}
