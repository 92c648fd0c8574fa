package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/funvibe/aurora/internal/backend"
	"github.com/funvibe/aurora/internal/config"
	"github.com/funvibe/aurora/internal/diagnostics"
	"github.com/funvibe/aurora/internal/lexer"
	"github.com/funvibe/aurora/internal/parser"
	"github.com/funvibe/aurora/internal/pipeline"
	"github.com/funvibe/aurora/internal/prettyprinter"
	"github.com/funvibe/aurora/internal/stdlib"
)

var (
	evalFlag    = flag.String("e", "", "run `source` and exit")
	astFlag     = flag.Bool("ast", false, "print the parsed program instead of running it")
	configFlag  = flag.String("config", "", "read settings from `file` instead of searching for aurora.yaml")
	verboseFlag = flag.Bool("v", false, "trace pipeline stages on stderr")
	versionFlag = flag.Bool("version", false, "print the version and exit")
)

// options are the settings that shape a single run.
type options struct {
	printAST bool
	color    bool
	stdout   io.Writer
	stderr   io.Writer
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file%s]\n\n", filepath.Base(os.Args[0]), config.SourceFileExt)
		fmt.Fprintln(os.Stderr, "With no file and a terminal on stdin, an interactive session starts.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *versionFlag {
		fmt.Println("aurora", config.Version)
		return
	}

	log.SetFlags(0)
	log.SetPrefix("aurora: ")
	log.SetOutput(os.Stderr)

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if !*verboseFlag && !cfg.Verbose {
		log.SetOutput(io.Discard)
	}

	opts := options{printAST: *astFlag, color: useColor(cfg), stdout: os.Stdout, stderr: os.Stderr}
	session := newSession(cfg)

	switch {
	case *evalFlag != "":
		os.Exit(runSource(context.Background(), session, *evalFlag, "", opts))
	case flag.NArg() > 0:
		os.Exit(runFile(session, flag.Arg(0), opts))
	case !isInteractive():
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
			os.Exit(1)
		}
		os.Exit(runSource(context.Background(), session, string(source), "", opts))
	default:
		os.Exit(runREPL(session, cfg, opts))
	}
}

// loadConfig reads the file named by path, or the nearest aurora.yaml
// above the working directory, or falls back to the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path == "" {
		return config.Default(), nil
	}
	log.Printf("config: %s", path)
	return config.LoadConfig(path)
}

func useColor(cfg *config.Config) bool {
	switch cfg.Color {
	case config.ColorModeAlways:
		return true
	case config.ColorModeNever:
		return false
	}
	return diagnostics.ColorSupported(os.Stderr)
}

func isInteractive() bool {
	stat, err := os.Stdin.Stat()
	return err == nil && stat.Mode()&os.ModeCharDevice != 0
}

func newSession(cfg *config.Config) *backend.Session {
	session := backend.NewSession()
	opts := stdlib.Options{Disabled: cfg.DisabledGroups()}
	stdlib.Load(session, opts)
	log.Printf("stdlib: %d natives", len(stdlib.Names(opts)))
	return session
}

func runFile(session *backend.Session, path string, opts options) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(opts.stderr, "Error reading input: %s\n", err)
		return 1
	}
	log.Printf("read %s (%s)", path, humanize.Bytes(uint64(len(source))))
	return runSource(context.Background(), session, string(source), path, opts)
}

// traced logs how long a stage took.
type traced struct {
	name string
	p    pipeline.Processor
}

func (t traced) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	start := time.Now()
	ctx = t.p.Process(ctx)
	log.Printf("%s: %s", t.name, time.Since(start))
	return ctx
}

// runSource lexes, parses and runs source against session and prints any
// diagnostics. It returns the process exit status.
func runSource(ctx context.Context, session *backend.Session, source, path string, opts options) int {
	pctx := pipeline.NewPipelineContext(source)
	pctx.FilePath = path

	stages := []pipeline.Processor{
		traced{"lex", &lexer.LexerProcessor{}},
		traced{"parse", &parser.ParserProcessor{}},
	}
	if !opts.printAST {
		exec := backend.NewExecutionProcessor(session)
		exec.Context = ctx
		stages = append(stages, traced{"run", exec})
	}
	pctx = pipeline.New(stages...).Run(pctx)

	if pctx.HasErrors() {
		for _, err := range pctx.Errors {
			fmt.Fprint(opts.stderr, diagnostics.Render(err, source, opts.color))
		}
		return 1
	}
	if opts.printAST {
		fmt.Fprint(opts.stdout, prettyprinter.Print(pctx.AstRoot))
	}
	return 0
}
