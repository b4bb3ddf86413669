package cli

import (
	"fmt"
	"strconv"
	"strings"

	"sbm/internal/store"
)

// cmdUpdate overwrites the title/comment fields that were given and
// toggles each tag in the -tg list: present tags are removed (after
// confirmation), absent ones are added. The row timestamp is refreshed
// whenever the update goes through.
func cmdUpdate(o *IO, st *store.Store, op Op, deps Deps) error {
	id, err := parseRowID(op.Arg)
	if err != nil {
		return err
	}

	row := st.Table.Get(id)
	if row == nil {
		return fmt.Errorf("%w: %d", store.ErrRowNotFound, id)
	}

	if op.HasTitle {
		row.Title = store.Truncate(op.Title, store.TitleMax)
	}

	if op.HasComment {
		row.Comment = store.Truncate(op.Comment, store.CommentMax)
	}

	if op.HasTagSpec {
		for _, token := range strings.Fields(op.TagSpec) {
			if err := toggleTag(st, row, token, deps); err != nil {
				return err
			}
		}
	}

	row.Touch()
	o.Printf("Updated bookmark %d.\n", id)

	return nil
}

// toggleTag adds the tag to the row, or removes it if already present.
// Removal is destructive and asks first; a declined prompt aborts the
// whole update before anything is persisted.
func toggleTag(st *store.Store, row *store.Row, token string, deps Deps) error {
	tagID, err := st.Tags.Resolve(token)
	if err != nil {
		return err
	}

	if !row.HasTag(tagID) {
		return row.AddTag(tagID)
	}

	name := token
	if tag := st.Tags.Get(tagID); tag != nil {
		name = tag.Name
	}

	ok, err := deps.Confirm(fmt.Sprintf("Are you sure you want to remove tag %q from bookmark %d?", name, row.ID))
	if err != nil {
		return err
	}

	if !ok {
		return errAborted
	}

	row.RemoveTag(tagID)

	return nil
}

func parseRowID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %q", errRowIDNumeric, arg)
	}

	return id, nil
}
