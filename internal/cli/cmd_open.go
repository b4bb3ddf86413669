package cli

import (
	"fmt"

	"sbm/internal/store"
)

// cmdOpen hands the stored URL to the platform opener.
func cmdOpen(st *store.Store, op Op, deps Deps) error {
	id, err := parseRowID(op.Arg)
	if err != nil {
		return err
	}

	row := st.Table.Get(id)
	if row == nil {
		return fmt.Errorf("%w: %d", store.ErrRowNotFound, id)
	}

	return deps.OpenURL(row.URL)
}
