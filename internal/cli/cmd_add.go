package cli

import (
	"slices"
	"strings"

	"sbm/internal/store"
)

// cmdAdd allocates a new row. The URL is stored verbatim; the title comes
// from -t or, failing that, from the page itself. An unresolvable tag name
// warns and is skipped rather than aborting the whole add.
func cmdAdd(o *IO, st *store.Store, op Op, deps Deps) error {
	title := op.Title

	if !op.HasTitle {
		fetched, err := deps.FetchTitle(op.Arg)
		if err != nil {
			o.Warnf("could not fetch a title for %s: %v", op.Arg, err)
		} else {
			title = fetched
		}
	}

	var tagIDs []int

	if op.HasTagSpec {
		var err error

		tagIDs, err = resolveTagSpec(o, &st.Tags, op.TagSpec)
		if err != nil {
			return err
		}
	}

	id, err := st.Table.Add(op.Arg, title, op.Comment, tagIDs)
	if err != nil {
		return err
	}

	o.Printf("Added bookmark %d.\n", id)

	return nil
}

// resolveTagSpec maps a space-separated list of tag ids and names to ids.
// Bad names warn and are dropped; exceeding the slot capacity is an error.
func resolveTagSpec(o *IO, tags *store.Registry, spec string) ([]int, error) {
	var ids []int

	for _, token := range strings.Fields(spec) {
		id, err := tags.Resolve(token)
		if err != nil {
			o.Warnf("invalid tag name %q", token)

			continue
		}

		if slices.Contains(ids, id) {
			o.Warnf("duplicate tag %q ignored", token)

			continue
		}

		ids = append(ids, id)
	}

	if len(ids) > store.RowTagCap {
		return nil, store.ErrCapacityExceeded
	}

	return ids, nil
}
