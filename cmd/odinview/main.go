package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/odin-inspect/expect"
	"github.com/wippyai/odin-inspect/inspect"
	"github.com/wippyai/odin-inspect/snapshot"
)

func main() {
	var (
		snapFile    = flag.String("snapshot", "", "Path to snapshot YAML file")
		varName     = flag.String("var", "", "Variable to show (default: all)")
		childPath   = flag.String("path", "", "Child path below -var (e.g. 0/2)")
		children    = flag.Bool("children", false, "List children of the selected value")
		check       = flag.Bool("check", false, "Check variable expectations and exit")
		chunkSize   = flag.Int("chunk", 0, "Slice chunk size (0: default)")
		summaryMax  = flag.Int("max-len", 0, "Summary length cap (0: default)")
		memoryPages = flag.Uint("pages", 0, "Wasm memory limit in 64KB pages (0: default)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log decoding diagnostics to stderr")
	)
	flag.Parse()

	if *snapFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: odinview -snapshot <file.yaml> [-var name [-path 0/1]] [-children]")
		fmt.Fprintln(os.Stderr, "       odinview -snapshot <file.yaml> -check")
		fmt.Fprintln(os.Stderr, "       odinview -snapshot <file.yaml> -i  (interactive mode)")
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log = l
	}
	defer func() { _ = log.Sync() }()
	inspect.SetLogger(log.Named("inspect"))
	snapshot.SetLogger(log.Named("snapshot"))

	opts := options{
		snapshot: *snapFile,
		variable: *varName,
		path:     *childPath,
		children: *children,
		cfg: inspect.Config{
			ChunkSize:     *chunkSize,
			SummaryMaxLen: *summaryMax,
		},
		pages: uint32(*memoryPages),
	}

	var err error
	switch {
	case *interactive:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		err = runInteractive(opts)
	case *check:
		err = runCheck(opts)
	default:
		err = run(opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	snapshot string
	variable string
	path     string
	cfg      inspect.Config
	children bool
	pages    uint32
}

func (o options) load(ctx context.Context) (*snapshot.Snapshot, *inspect.Inspector, error) {
	snap, err := snapshot.Load(ctx, o.snapshot, &snapshot.Config{MemoryLimitPages: o.pages})
	if err != nil {
		return nil, nil, err
	}
	return snap, inspect.New(snap.Target(), &o.cfg), nil
}

func run(o options) error {
	ctx := context.Background()
	snap, ins, err := o.load(ctx)
	if err != nil {
		return err
	}
	defer snap.Close(ctx)

	if o.variable == "" {
		for _, v := range snap.Variables() {
			val := v.Value()
			fmt.Printf("%s: %s = %s\n", v.Name, inspect.DisplayType(val.Type()), ins.Text(val))
			if o.children {
				fmt.Println(ins.Describe(val))
			}
		}
		return nil
	}

	v, ok := snap.Variable(o.variable)
	if !ok {
		return fmt.Errorf("no variable %q in %s", o.variable, o.snapshot)
	}
	path, err := inspect.ParsePath(o.path)
	if err != nil {
		return err
	}
	val, err := ins.Descend(v.Value(), path)
	if err != nil {
		return err
	}

	if o.children {
		fmt.Println(ins.Describe(val))
		return nil
	}
	fmt.Printf("%s: %s = %s\n", val.Name(), inspect.DisplayType(val.Type()), ins.Text(val))
	return nil
}

func runCheck(o options) error {
	ctx := context.Background()
	snap, ins, err := o.load(ctx)
	if err != nil {
		return err
	}
	defer snap.Close(ctx)

	cases := snap.Cases()
	err = expect.Check(cases, func(name string) (string, error) {
		v, ok := snap.Variable(name)
		if !ok {
			return "", fmt.Errorf("no variable %q", name)
		}
		return ins.Text(v.Value()), nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("ok: %d expectations\n", len(cases))
	return nil
}
