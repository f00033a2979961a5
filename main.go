// rsextract lists the top-level items of a Rust source file, or extracts one
// of them as standalone formatted source.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phobologic/rsextract/internal/extract"
)

var version = "dev"

// Exit codes.
const (
	exitError    = 1
	exitNotFound = 2
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(reorderArgs(args, commandNames(root)))
	return root.Execute()
}

func exitCode(err error) int {
	if errors.Is(err, extract.ErrNotFound) {
		return exitNotFound
	}
	return exitError
}

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"--formatter":     true,
	"--rustfmt":       true,
	"--edition":       true,
	"--color":         true,
	"--format":        true,
	"--max-file-size": true,
}

// reorderArgs accepts the `FILE COMMAND [NAME]` form by swapping the file
// behind the command name, which is where cobra expects subcommands. Args
// already in `COMMAND FILE [NAME]` order are returned unchanged.
func reorderArgs(args []string, commands map[string]bool) []string {
	var positional []int
	for i := 0; i < len(args) && len(positional) < 2; i++ {
		a := args[i]
		if a == "--" {
			break
		}
		if len(a) > 1 && a[0] == '-' {
			if flagsWithValue[a] && i+1 < len(args) {
				i++
			}
			continue
		}
		positional = append(positional, i)
	}

	if len(positional) < 2 {
		return args
	}
	first, second := positional[0], positional[1]
	if commands[args[first]] || !commands[args[second]] {
		return args
	}

	out := append([]string(nil), args...)
	out[first], out[second] = out[second], out[first]
	return out
}
