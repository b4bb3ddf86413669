package cli

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"sbm/internal/store"
)

// commentDisplayWidth bounds the comment line in listings; the stored
// value is untouched.
const commentDisplayWidth = 72

// cmdList prints rows in table order. The term "all" matches everything;
// any other term is a case-insensitive substring match against titles.
// With -tg, rows carrying any of the requested tags are printed instead.
func cmdList(o *IO, st *store.Store, op Op) error {
	if op.HasTagSpec {
		return listByTag(o, st, op.TagSpec)
	}

	listAll := strings.EqualFold(op.Arg, "all")

	for row := range st.Table.Live() {
		if listAll || store.ContainsFold(row.Title, op.Arg) {
			printRow(o, row, &st.Tags)
		}
	}

	return nil
}

// listByTag implements OR semantics over the requested tags. A row is
// printed once per matching requested tag, so a row carrying several of
// them shows up several times; long-standing behavior that scripts may
// rely on.
func listByTag(o *IO, st *store.Store, spec string) error {
	var ids []int

	for _, token := range strings.Fields(spec) {
		id, err := st.Tags.Resolve(token)
		if err != nil {
			return err
		}

		ids = append(ids, id)
	}

	for row := range st.Table.Live() {
		for _, id := range ids {
			if row.HasTag(id) {
				printRow(o, row, &st.Tags)
			}
		}
	}

	return nil
}

func printRow(o *IO, row *store.Row, tags *store.Registry) {
	o.Printf("%3d. %s\n", row.ID, row.Title)
	o.Printf("     > %s\n", row.URL)

	if row.Comment != "" {
		o.Printf("     %s\n", runewidth.Truncate(row.Comment, commentDisplayWidth, store.Ellipsis))
	}

	names := row.TagNames(tags)
	if len(names) > 0 {
		o.Printf("     | %s |\n", strings.Join(names, " | "))
	}
}
