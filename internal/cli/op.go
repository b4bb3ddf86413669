package cli

// Mode identifies which of the eleven state transitions an operation
// requests.
type Mode int

const (
	ModeInvalid Mode = iota

	ModeAdd
	ModeUpdate
	ModeRemove
	ModeOpen
	ModeList

	ModeTagAdd
	ModeTagRename
	ModeTagRemove
	ModeTagList
	ModeTagToEntry
)

// Op is one parsed command. Arg is the positional value (URL, row id, list
// term, or tag id/name depending on Mode); the Has* flags distinguish "flag
// absent" from "flag given an empty value".
type Op struct {
	Mode Mode

	Arg     string
	Title   string
	Comment string
	TagSpec string

	HasTitle   bool
	HasComment bool
	HasTagSpec bool
}
