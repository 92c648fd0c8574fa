package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"

	"github.com/funvibe/aurora/internal/backend"
	"github.com/funvibe/aurora/internal/config"
	"github.com/funvibe/aurora/internal/lexer"
	"github.com/funvibe/aurora/internal/parser"
	"github.com/funvibe/aurora/internal/pipeline"
)

// runREPL reads one paragraph at a time and runs it against session.
// Globals survive between paragraphs, including after an error.
func runREPL(session *backend.Session, cfg *config.Config, opts options) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer saveHistory(ln, histPath)
	}

	fmt.Printf("Aurora %s. Type %s to exit.\n", config.Version, config.ReplQuitCommand)
	for {
		source, ok := readParagraph(ln, cfg.Prompt)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(source)
		if trimmed == "" {
			continue
		}
		if trimmed == config.ReplQuitCommand {
			return 0
		}
		for _, line := range strings.Split(source, "\n") {
			if strings.TrimSpace(line) != "" {
				ln.AppendHistory(line)
			}
		}

		// Ctrl-C while a paragraph runs interrupts it and keeps the session.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		runSource(ctx, session, source, "", opts)
		stop()
	}
}

func saveHistory(ln *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Printf("history: %s", err)
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		log.Printf("history: %s", err)
	}
}

// readParagraph reads lines until they form a complete program, that is
// until the parser stops asking for more input. Ctrl-C drops the lines
// read so far. It returns false at end of input.
func readParagraph(ln *liner.State, prompt string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = config.ContinuationPrompt
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if err != nil {
			log.Printf("prompt: %s", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if strings.TrimSpace(b.String()) == config.ReplQuitCommand || !needsMore(b.String()) {
			return b.String(), true
		}
	}
}

// needsMore reports whether source stops in the middle of a construct.
func needsMore(source string) bool {
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).
		Run(pipeline.NewPipelineContext(source))
	return parser.IsIncomplete(ctx)
}
