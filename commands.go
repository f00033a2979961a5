package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phobologic/rsextract/internal/config"
	"github.com/phobologic/rsextract/internal/extract"
	"github.com/phobologic/rsextract/internal/format"
	"github.com/phobologic/rsextract/internal/lang"
	"github.com/phobologic/rsextract/internal/model"
	"github.com/phobologic/rsextract/internal/output"
)

// stdinPath names standard input in place of a file.
const stdinPath = "-"

var utf8BOM = []byte("\xef\xbb\xbf")

// app carries per-invocation state resolved before a subcommand runs.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	printer *output.Printer
}

type extractCommand struct {
	kind    model.Kind
	use     string
	aliases []string
	short   string
}

var extractCommands = []extractCommand{
	{model.KindFn, "function", []string{"fn", "f"}, "Extract a function"},
	{model.KindStruct, "struct", []string{"s"}, "Extract a struct"},
	{model.KindEnum, "enum", []string{"e"}, "Extract an enum"},
	{model.KindTrait, "trait", []string{"t"}, "Extract a trait"},
	{model.KindConst, "const", []string{"c"}, "Extract a constant"},
	{model.KindExternCrate, "extern-crate", nil, "Extract an extern crate declaration"},
	{model.KindStatic, "static", nil, "Extract a static"},
	{model.KindType, "type", nil, "Extract a type alias"},
	{model.KindUnion, "union", nil, "Extract a union"},
	{model.KindMacro, "macro", nil, "Extract a macro_rules! definition (output might be mangled)"},
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "rsextract FILE <list | KIND NAME>",
		Short: "List or extract top-level items of a Rust source file",
		Long: `rsextract lists the top-level items of a Rust source file, or prints one
item on its own as standalone formatted source.

FILE may be given before or after the subcommand; "-" reads standard input.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = config.NewLogger(stderr, cfg.Verbose)
			a.printer = output.NewPrinter(stdout, stderr, output.ColorEnabled(cfg.Color, stdout))
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("rsextract {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.String("formatter", config.DefaultFormatter, "formatter to render items with (auto|rustfmt|builtin)")
	pf.String("rustfmt", config.DefaultRustfmtPath, "rustfmt binary")
	pf.String("edition", config.DefaultEdition, "Rust edition passed to rustfmt")
	pf.String("color", config.DefaultColor, "color listing output (auto|always|never)")
	pf.String("format", config.DefaultFormat, "listing output format (text|toon)")
	pf.Int("max-file-size", config.DefaultMaxFileSize, "reject files larger than this many bytes")
	pf.BoolP("verbose", "v", false, "log debug output to stderr")

	root.AddCommand(a.listCmd())
	root.AddCommand(a.extractAnyCmd())
	for _, ec := range extractCommands {
		root.AddCommand(a.extractCmd(ec))
	}
	return root
}

// commandNames returns every subcommand name and alias of root.
func commandNames(root *cobra.Command) map[string]bool {
	names := map[string]bool{"help": true, "completion": true}
	for _, c := range root.Commands() {
		names[c.Name()] = true
		for _, alias := range c.Aliases {
			names[alias] = true
		}
	}
	return names
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE",
		Short: "List every named top-level item in source order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := a.readSource(cmd, path)
			if err != nil {
				return err
			}
			cat, err := a.extractor(path, nil).List(cmd.Context(), source, path)
			if err != nil {
				return err
			}
			if a.cfg.Format == "toon" {
				return a.printer.CatalogTOON(cat)
			}
			return a.printer.Catalog(cat)
		},
	}
}

func (a *app) extractCmd(ec extractCommand) *cobra.Command {
	return &cobra.Command{
		Use:     ec.use + " FILE NAME",
		Aliases: ec.aliases,
		Short:   ec.short,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.extract(cmd, args[0], ec.kind, args[1])
		},
	}
}

func (a *app) extractAnyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract FILE KIND NAME",
		Short: "Extract an item of any kind (fn, struct, enum, trait, const, \"extern crate\", static, type, union, macro)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseKind(args[1])
			if err != nil {
				return err
			}
			return a.extract(cmd, args[0], kind, args[2])
		},
	}
}

func (a *app) extract(cmd *cobra.Command, path string, kind model.Kind, name string) error {
	source, err := a.readSource(cmd, path)
	if err != nil {
		return err
	}
	f, err := format.New(format.Options{
		Name:        a.cfg.Formatter,
		RustfmtPath: a.cfg.RustfmtPath,
		Edition:     a.cfg.Edition,
		Logger:      a.logger,
	})
	if err != nil {
		return err
	}
	r, err := a.extractor(path, f).Extract(cmd.Context(), source, path, kind, name)
	if err != nil {
		return err
	}
	return a.printer.Rendered(r)
}

// extractor picks the language by file extension, falling back to Rust for
// stdin and unknown extensions.
func (a *app) extractor(path string, f format.Formatter) *extract.Extractor {
	name := lang.ForExtension(filepath.Ext(path))
	if name == "" {
		name = "rust"
	}
	return extract.New(lang.Languages[name], f, a.logger)
}

// readSource reads path, or stdin for "-", refusing input over the
// configured size limit.
func (a *app) readSource(cmd *cobra.Command, path string) ([]byte, error) {
	limit := a.cfg.MaxFileSize

	var data []byte
	if path == stdinPath {
		var err error
		data, err = io.ReadAll(io.LimitReader(cmd.InOrStdin(), int64(limit)+1))
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		if len(data) > limit {
			return nil, fmt.Errorf("stdin: larger than %d bytes", limit)
		}
	} else {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s: is a directory", path)
		}
		if info.Size() > int64(limit) {
			return nil, fmt.Errorf("%s: larger than %d bytes", path, limit)
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	a.logger.Debug("read source", "path", path, "bytes", len(data))
	return bytes.TrimPrefix(data, utf8BOM), nil
}
