package cli

import (
	"fmt"
	"strings"

	"sbm/internal/store"
)

func cmdTagAdd(o *IO, st *store.Store, op Op) error {
	id, err := st.Tags.Add(op.Arg)
	if err != nil {
		return err
	}

	tag := st.Tags.Get(id)
	o.Printf("Added tag %d (%s).\n", id, tag.Name)

	return nil
}

// cmdTagRename overwrites the name unconditionally; duplicate names are
// permitted. The new name goes through the same validation as tag add.
func cmdTagRename(o *IO, st *store.Store, op Op) error {
	tag, err := st.Tags.ResolveExisting(op.Arg)
	if err != nil {
		return err
	}

	name, err := store.ValidateTagName(op.TagSpec)
	if err != nil {
		return err
	}

	old := tag.Name
	tag.Name = name
	o.Printf("Renamed tag %d (%s -> %s).\n", tag.ID, old, name)

	return nil
}

// cmdTagRemove tombstones the tag and clears it from every row holding it,
// after confirmation.
func cmdTagRemove(o *IO, st *store.Store, op Op, deps Deps) error {
	tag, err := st.Tags.ResolveExisting(op.Arg)
	if err != nil {
		return err
	}

	ok, err := deps.Confirm(fmt.Sprintf("Are you sure you want to remove tag %q?", tag.Name))
	if err != nil {
		return err
	}

	if !ok {
		return errAborted
	}

	name := tag.Name
	if err := st.RemoveTag(tag.ID); err != nil {
		return err
	}

	o.Printf("Removed tag %q.\n", name)

	return nil
}

func cmdTagList(o *IO, st *store.Store, op Op) error {
	if !strings.EqualFold(op.Arg, "all") {
		return errTagListOnlyAll
	}

	for tag := range st.Tags.Live() {
		o.Printf("%d] %s\n", tag.ID, tag.Name)
	}

	return nil
}

// cmdTagToEntry is the bare "tag <row> <tag>" shorthand: fill the first
// free slot on the row with an existing tag.
func cmdTagToEntry(o *IO, st *store.Store, op Op) error {
	id, err := parseRowID(op.Arg)
	if err != nil {
		return fmt.Errorf("%w: %q", errTagAddToEntryID, op.Arg)
	}

	tag, err := st.Tags.ResolveExisting(op.TagSpec)
	if err != nil {
		return err
	}

	row := st.Table.Get(id)
	if row == nil {
		return fmt.Errorf("%w: %d", store.ErrRowNotFound, id)
	}

	if err := row.AddTag(tag.ID); err != nil {
		return err
	}

	o.Printf("Tagged bookmark %d with %q.\n", id, tag.Name)

	return nil
}
