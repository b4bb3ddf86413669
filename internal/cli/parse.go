package cli

import (
	"errors"
	"fmt"
)

// Bounds on tokens after the verb, checked before any mode-specific
// parsing.
const (
	maxEntryArgs = 8
	minTagArgs   = 2
	maxTagArgs   = 3
)

var (
	errNoCommand      = errors.New("no command given")
	errUnknownCommand = errors.New("unknown command")

	errURLRequired     = errors.New("attempting to add a new URL but no URL provided")
	errIDRequired      = errors.New("no bookmark ID provided")
	errFlagNeedsValue  = errors.New("option flag given with no value")
	errUnexpectedArg   = errors.New("unexpected argument")
	errTooManyArgs     = errors.New("too many arguments (did you forget to quote a value?)")
	errTooFewTagArgs   = errors.New("too few arguments for interacting with tags")
	errTooManyTagArgs  = errors.New("too many arguments for interacting with tags (did you forget to quote a value?)")
	errUpdateNoFields  = errors.New("update needs at least one of -c, -t, -tg")
	errListArgs        = errors.New(`list needs a term, "all", or -tg <tag>`)
	errTagListOnlyAll  = errors.New(`only "all" can be used to list tags`)
	errRowIDNumeric    = errors.New("argument must be a bookmark ID")
	errTagAddToEntryID = errors.New("first argument must be a bookmark ID")
)

// Parse turns raw argument tokens (everything after the program name and
// global flags) into a typed operation. It touches no state; all lookups
// happen later, against the loaded tables.
func Parse(args []string) (Op, error) {
	if len(args) == 0 {
		return Op{}, errNoCommand
	}

	if args[0] == "tag" {
		return parseTag(args[1:])
	}

	return parseEntry(args[0], args[1:])
}

func parseEntry(verb string, rest []string) (Op, error) {
	if len(rest) > maxEntryArgs {
		return Op{}, fmt.Errorf("%w: %s", errTooManyArgs, verb)
	}

	switch verb {
	case "add":
		if len(rest) == 0 {
			return Op{}, errURLRequired
		}

		op := Op{Mode: ModeAdd, Arg: rest[0]}
		if err := parseOptionFlags(rest[1:], &op); err != nil {
			return Op{}, err
		}

		return op, nil

	case "update":
		if len(rest) == 0 {
			return Op{}, errIDRequired
		}

		op := Op{Mode: ModeUpdate, Arg: rest[0]}
		if err := parseOptionFlags(rest[1:], &op); err != nil {
			return Op{}, err
		}

		if !op.HasTitle && !op.HasComment && !op.HasTagSpec {
			return Op{}, errUpdateNoFields
		}

		return op, nil

	case "remove", "open":
		if len(rest) != 1 {
			return Op{}, errIDRequired
		}

		mode := ModeRemove
		if verb == "open" {
			mode = ModeOpen
		}

		return Op{Mode: mode, Arg: rest[0]}, nil

	case "list":
		return parseList(rest)

	default:
		return Op{}, fmt.Errorf("%w: %s", errUnknownCommand, verb)
	}
}

// parseList accepts either a single term (or "all") or the pair
// "-tg <tag-spec>".
func parseList(rest []string) (Op, error) {
	switch len(rest) {
	case 1:
		if rest[0] == "-tg" {
			return Op{}, fmt.Errorf("%w: -tg", errFlagNeedsValue)
		}

		return Op{Mode: ModeList, Arg: rest[0]}, nil
	case 2:
		if rest[0] != "-tg" {
			return Op{}, errListArgs
		}

		return Op{Mode: ModeList, TagSpec: rest[1], HasTagSpec: true}, nil
	default:
		return Op{}, errListArgs
	}
}

// parseOptionFlags reads the -c/-t/-tg options that may follow the
// positional argument in any order. Each flag consumes exactly the next
// token as its value.
func parseOptionFlags(tokens []string, op *Op) error {
	for i := 0; i < len(tokens); i += 2 {
		flag := tokens[i]

		value := ""
		if i+1 < len(tokens) {
			value = tokens[i+1]
		} else if flag == "-c" || flag == "-t" || flag == "-tg" {
			return fmt.Errorf("%w: %s", errFlagNeedsValue, flag)
		}

		switch flag {
		case "-c":
			op.Comment = value
			op.HasComment = true
		case "-t":
			op.Title = value
			op.HasTitle = true
		case "-tg":
			op.TagSpec = value
			op.HasTagSpec = true
		default:
			return fmt.Errorf("%w: %s", errUnexpectedArg, flag)
		}
	}

	return nil
}

// parseTag handles the tag grammar: a subcommand with one or two
// arguments, or the bare two-token shorthand "tag <row> <tag>" meaning
// add-tag-to-entry.
func parseTag(args []string) (Op, error) {
	if len(args) < minTagArgs {
		return Op{}, errTooFewTagArgs
	}

	if len(args) > maxTagArgs {
		return Op{}, errTooManyTagArgs
	}

	switch args[0] {
	case "add":
		if len(args) != 2 {
			return Op{}, errTooManyTagArgs
		}

		return Op{Mode: ModeTagAdd, Arg: args[1]}, nil

	case "rename":
		if len(args) != 3 {
			return Op{}, errTooFewTagArgs
		}

		return Op{Mode: ModeTagRename, Arg: args[1], TagSpec: args[2], HasTagSpec: true}, nil

	case "remove":
		if len(args) != 2 {
			return Op{}, errTooManyTagArgs
		}

		return Op{Mode: ModeTagRemove, Arg: args[1]}, nil

	case "list":
		if len(args) != 2 {
			return Op{}, errTooManyTagArgs
		}

		return Op{Mode: ModeTagList, Arg: args[1]}, nil

	default:
		if len(args) != 2 {
			return Op{}, errTooManyTagArgs
		}

		return Op{Mode: ModeTagToEntry, Arg: args[0], TagSpec: args[1], HasTagSpec: true}, nil
	}
}
