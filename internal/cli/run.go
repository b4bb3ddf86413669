// Package cli parses one bookmark command, applies it to the loaded
// store, and persists the result. One process run performs exactly one
// state transition.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"sbm/internal/config"
	"sbm/internal/store"
)

// errAborted signals a declined confirmation: stop without persisting and
// without an error exit.
var errAborted = errors.New("aborted")

// Run is the main entry point. Returns the process exit code.
func Run(stdin io.Reader, out, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < 2 {
		printUsage(out)

		return 0
	}

	flags := flag.NewFlagSet("sbm", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.SetInterspersed(false)

	configPath := flags.String("config", "", "use specified config file")
	storePath := flags.String("store", "", "bookmark store file (overrides config)")
	help := flags.BoolP("help", "h", false, "show help")

	if err := flags.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(out)

			return 0
		}

		fprintln(errOut, "error:", err)

		return 1
	}

	rest := flags.Args()

	if *help || len(rest) == 0 || rest[0] == "help" || hasHelpFlag(rest) {
		printUsage(out)

		return 0
	}

	op, err := Parse(rest)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	cfg, err := config.Load(env, *configPath)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	dataFile := *storePath
	if dataFile == "" {
		dataFile, err = config.DataFile(cfg, env)
		if err != nil {
			fprintln(errOut, "error:", err)

			return 1
		}
	}

	// A signal during the blocking title fetch cancels it.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	deps := defaultDeps(ctx, stdin, out)

	return run(NewIO(out, errOut), dataFile, op, deps)
}

// run executes one parsed operation against the store at dataFile.
// Split from Run so tests can inject collaborators.
func run(o *IO, dataFile string, op Op, deps Deps) int {
	st, done, err := loadStore(o, dataFile, deps)
	if err != nil {
		o.Errorf("%v", err)

		return 1
	}

	if done {
		return 0
	}

	if err := dispatch(o, st, op, deps); err != nil {
		if errors.Is(err, errAborted) {
			return 0
		}

		o.Errorf("%v", err)

		return 1
	}

	if err := store.Save(dataFile, st); err != nil {
		o.Errorf("%v", err)

		return 1
	}

	return 0
}

// loadStore reads the store file. On first run it offers to create an
// empty store; either answer ends the run with exit 0 (done=true), and the
// user re-runs their command against the fresh file.
func loadStore(o *IO, dataFile string, deps Deps) (*store.Store, bool, error) {
	st, err := store.Load(dataFile)
	if err == nil {
		return st, false, nil
	}

	if !os.IsNotExist(err) {
		return nil, false, err
	}

	ok, cerr := deps.Confirm(fmt.Sprintf("Could not find %q.\nWould you like to create a new bookmark store?", dataFile))
	if cerr != nil {
		return nil, false, cerr
	}

	if !ok {
		return nil, true, nil
	}

	if err := store.Save(dataFile, store.New()); err != nil {
		return nil, false, err
	}

	o.Println("Store created. You may need to re-run your last command.")

	return nil, true, nil
}

// hasHelpFlag reports whether a help flag appears anywhere in the command
// tokens, so "sbm add -h" works like "sbm -h".
func hasHelpFlag(tokens []string) bool {
	for _, tok := range tokens {
		if tok == "-h" || tok == "--help" {
			return true
		}
	}

	return false
}

func dispatch(o *IO, st *store.Store, op Op, deps Deps) error {
	switch op.Mode {
	case ModeAdd:
		return cmdAdd(o, st, op, deps)
	case ModeUpdate:
		return cmdUpdate(o, st, op, deps)
	case ModeRemove:
		return cmdRemove(o, st, op, deps)
	case ModeOpen:
		return cmdOpen(st, op, deps)
	case ModeList:
		return cmdList(o, st, op)
	case ModeTagAdd:
		return cmdTagAdd(o, st, op)
	case ModeTagRename:
		return cmdTagRename(o, st, op)
	case ModeTagRemove:
		return cmdTagRemove(o, st, op, deps)
	case ModeTagList:
		return cmdTagList(o, st, op)
	case ModeTagToEntry:
		return cmdTagToEntry(o, st, op)
	default:
		return errNoCommand
	}
}

func printUsage(w io.Writer) {
	fprintln(w, `sbm - simple bookmark manager

Usage: sbm [options] <command> [args]

Options:
  --config <file>    Use specified config file
  --store <file>     Bookmark store file (overrides config)

Commands:
  add <url> [-c comment] [-t title] [-tg tags]
                         Add a bookmark; the title is fetched from the
                         page unless -t is given
  update <id> [-c comment] [-t title] [-tg tags]
                         Update a bookmark; -tg toggles tags on and off
  remove <id>            Remove a bookmark (asks first)
  open <id>              Open a bookmark in the default browser
  list <term|all>        List bookmarks whose title contains term
  list -tg <tags>        List bookmarks carrying any of the tags

  tag add <name>         Register a tag
  tag rename <id|name> <new-name>
  tag remove <id|name>   Remove a tag everywhere (asks first)
  tag list all           List all tags
  tag <id> <id|name>     Add a tag to a bookmark

Tag lists are space-separated ids or names, quoted as one value:
  sbm add https://example.com -tg "tools reading"`)
}
