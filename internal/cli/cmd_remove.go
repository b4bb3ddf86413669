package cli

import (
	"fmt"

	"sbm/internal/store"
)

// cmdRemove tombstones a row after an explicit confirmation. Declining
// leaves the store untouched and is not an error.
func cmdRemove(o *IO, st *store.Store, op Op, deps Deps) error {
	id, err := parseRowID(op.Arg)
	if err != nil {
		return err
	}

	row := st.Table.Get(id)
	if row == nil {
		return fmt.Errorf("%w: %d", store.ErrRowNotFound, id)
	}

	ok, err := deps.Confirm(fmt.Sprintf("Are you sure you want to delete bookmark %d titled %q?", id, row.Title))
	if err != nil {
		return err
	}

	if !ok {
		return errAborted
	}

	if err := st.Table.Remove(id); err != nil {
		return err
	}

	o.Printf("Removed bookmark %d.\n", id)

	return nil
}
