// File: lixenwraith/tomldir/cmd/tomldir/main.go
// Command tomldir prints a configuration file as flattened dotted keys
package main

import (
	"cmp"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/lixenwraith/tomldir"
)

func main() {
	var (
		storeName  = flag.String("store", "ordered", "table store: hash, ordered or sorted")
		formatName = flag.String("format", "auto", "input format: auto, toml, json or yaml")
		sortKeys   = flag.Bool("sort", false, "sort output by key")
		get        = flag.String("get", "", "print only the value at this dotted path")
		dump       = flag.Bool("dump", false, "re-encode the document as TOML")
		debug      = flag.Bool("debug", false, "print kinds and enable debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <config-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	opts := options{
		store:  *storeName,
		format: *formatName,
		get:    *get,
		sort:   *sortKeys,
		dump:   *dump,
		debug:  *debug,
	}
	if err := run(os.Stdout, flag.Arg(0), opts); err != nil {
		fmt.Fprintf(os.Stderr, "tomldir: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	store  string
	format string
	get    string
	sort   bool
	dump   bool
	debug  bool
}

func run(w io.Writer, path string, opts options) error {
	kind, err := tomldir.ParseStoreKind(opts.store)
	if err != nil {
		return err
	}

	builder := tomldir.NewBuilder().
		WithFile(path).
		WithFormatName(opts.format).
		WithStoreKind(kind)
	if opts.debug {
		builder = builder.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := builder.Build()
	if err != nil {
		return err
	}

	switch {
	case opts.get != "":
		v, ok := cfg.Get(opts.get)
		if !ok {
			return fmt.Errorf("%s: key not found", opts.get)
		}
		_, err = fmt.Fprintln(w, v.String())
		return err
	case opts.dump:
		return cfg.Dump(w)
	case opts.debug:
		_, err = io.WriteString(w, cfg.Debug())
		return err
	}

	entries := tomldir.FlattenInto(cfg, tomldir.CollectEntries)
	if opts.sort {
		slices.SortFunc(entries, func(a, b tomldir.FlatEntry) int {
			return cmp.Compare(a.Key, b.Key)
		})
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s = %s\n", e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}
