package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	flag "github.com/spf13/pflag"

	codestory "github.com/alnah/go-codestory"
	"github.com/alnah/go-codestory/internal/assets"
	"github.com/alnah/go-codestory/internal/config"
	"github.com/alnah/go-codestory/internal/hints"
	"github.com/alnah/go-codestory/internal/logging"
	"github.com/alnah/go-codestory/internal/render"
)

// ---------------------------------------------------------------------------
// render
// ---------------------------------------------------------------------------

type renderFlags struct {
	common commonFlags
	output string
	page   bool
	title  string
}

func renderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := newFlagSet("render")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	fs.BoolVar(&f.page, "page", false, "write a standalone page with the reader stylesheet")
	fs.StringVar(&f.title, "title", "", "page title (default from file name)")
	addCommonFlags(fs, &f.common)
	return fs
}

func runRender(_ context.Context, args []string, env *Environment) error {
	var f renderFlags
	positional, err := parseFlags(renderFlagSet(&f), args, 0, 1)
	if err != nil {
		return err
	}
	rt, err := setup(env, f.common, nil)
	if err != nil {
		return err
	}
	name, raw, err := readInput(positional, env)
	if err != nil {
		return err
	}

	tree := codestory.ToRenderTree(codestory.Parse(raw))
	var buf bytes.Buffer
	if !f.page {
		err = render.WriteHTML(&buf, tree)
	} else {
		loader, lerr := rt.assets()
		if lerr != nil {
			return lerr
		}
		css, lerr := loader.LoadStyle(assets.ReaderStyle)
		if lerr != nil {
			return lerr
		}
		title := f.title
		if title == "" {
			title = titleFromName(name)
		}
		err = render.WritePage(&buf, render.Page{Title: title, CSS: css, Tree: tree})
	}
	if err != nil {
		return err
	}
	rt.logger(logging.RenderModule).Debug("rendered", "input", name, "nodes", len(tree.Nodes))
	return writeOutput(f.output, buf.Bytes(), env)
}

// ---------------------------------------------------------------------------
// chunks
// ---------------------------------------------------------------------------

type chunksFlags struct {
	common commonFlags
	json   bool
}

func chunksFlagSet(f *chunksFlags) *flag.FlagSet {
	fs := newFlagSet("chunks")
	fs.BoolVar(&f.json, "json", false, "print chunks as a JSON array")
	addCommonFlags(fs, &f.common)
	return fs
}

type chunkJSON struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

func runChunks(_ context.Context, args []string, env *Environment) error {
	var f chunksFlags
	positional, err := parseFlags(chunksFlagSet(&f), args, 0, 1)
	if err != nil {
		return err
	}
	if _, err := setup(env, f.common, nil); err != nil {
		return err
	}
	_, raw, err := readInput(positional, env)
	if err != nil {
		return err
	}

	chunks := codestory.ToChunks(raw)
	if f.json {
		out := make([]chunkJSON, len(chunks))
		for i, c := range chunks {
			out[i] = chunkJSON{Kind: c.Kind.String(), Content: c.Content}
		}
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}
	for i, c := range chunks {
		fmt.Fprintf(env.Stdout, "%d\t%s\t%s\n", i, c.Kind, strconv.Quote(c.Content))
	}
	return nil
}

// ---------------------------------------------------------------------------
// speech
// ---------------------------------------------------------------------------

type speechFlags struct {
	common commonFlags
	lang   string
	full   bool
}

func speechFlagSet(f *speechFlags) *flag.FlagSet {
	fs := newFlagSet("speech")
	fs.StringVarP(&f.lang, "lang", "l", "", "language code for punctuation and length rules")
	fs.BoolVar(&f.full, "full", false, "print the whole text without the length policy")
	addCommonFlags(fs, &f.common)
	return fs
}

func runSpeech(_ context.Context, args []string, env *Environment) error {
	var f speechFlags
	positional, err := parseFlags(speechFlagSet(&f), args, 0, 1)
	if err != nil {
		return err
	}
	rt, err := setup(env, f.common, func(c *config.Config) {
		if f.lang != "" {
			c.Language.Target = f.lang
		}
	})
	if err != nil {
		return err
	}
	_, raw, err := readInput(positional, env)
	if err != nil {
		return err
	}

	lang := rt.cfg.Language.Target
	text := codestory.SpeechText(raw, lang)
	if f.full {
		text = codestory.SpeechTextFull(raw, lang)
	}
	fmt.Fprintln(env.Stdout, text)
	return nil
}

// ---------------------------------------------------------------------------
// translate
// ---------------------------------------------------------------------------

type translateFlags struct {
	common commonFlags
	output string
	to     string
	from   string
	strict bool
}

func translateFlagSet(f *translateFlags) *flag.FlagSet {
	fs := newFlagSet("translate")
	fs.StringVarP(&f.to, "to", "t", "", "target language (default language.target)")
	fs.StringVar(&f.from, "from", "", "source language (default language.source)")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	fs.BoolVar(&f.strict, "strict", false, "fail when no chunk could be translated")
	addCommonFlags(fs, &f.common)
	return fs
}

func runTranslate(ctx context.Context, args []string, env *Environment) error {
	var f translateFlags
	positional, err := parseFlags(translateFlagSet(&f), args, 0, 1)
	if err != nil {
		return err
	}
	rt, err := setup(env, f.common, func(c *config.Config) {
		if f.to != "" {
			c.Language.Target = f.to
		}
		if f.from != "" {
			c.Language.Source = f.from
		}
	})
	if err != nil {
		return err
	}
	name, raw, err := readInput(positional, env)
	if err != nil {
		return err
	}

	svc, err := rt.translator()
	if err != nil {
		return err
	}
	target := rt.cfg.Language.Target
	content := raw
	if svc != nil {
		res := svc.Markdown(ctx, raw, rt.cfg.Language.Source, target)
		content = res.Content
		if res.Unavailable() {
			notice := codestory.Notice{File: name, Language: target}
			if f.strict {
				return withHint(notice, hints.ForTranslator(rt.cfg.Translation.Provider))
			}
			fmt.Fprintf(env.Stderr, "warning: %v\n", notice)
		}
	}
	return writeOutput(f.output, []byte(content), env)
}

// ---------------------------------------------------------------------------
// copy
// ---------------------------------------------------------------------------

type copyFlags struct {
	common commonFlags
	osc52  bool
}

func copyFlagSet(f *copyFlags) *flag.FlagSet {
	fs := newFlagSet("copy")
	fs.BoolVar(&f.osc52, "osc52", false, "copy through the terminal escape sequence only")
	addCommonFlags(fs, &f.common)
	return fs
}

func runCopy(ctx context.Context, args []string, env *Environment) error {
	var f copyFlags
	positional, err := parseFlags(copyFlagSet(&f), args, 0, 2)
	if err != nil {
		return err
	}
	rt, err := setup(env, f.common, nil)
	if err != nil {
		return err
	}

	index := 1
	if len(positional) == 2 {
		n, convErr := strconv.Atoi(positional[1])
		if convErr != nil || n < 1 {
			return usageError(fmt.Errorf("%w: block number %q", ErrInvalidArgument, positional[1]))
		}
		index = n
	}
	_, raw, err := readInput(positional[:min(len(positional), 1)], env)
	if err != nil {
		return err
	}

	tree := codestory.ToRenderTree(codestory.Parse(raw))
	codes := tree.CodeNodes()
	if index > len(codes) {
		return usageError(fmt.Errorf("%w: block %d of %d", ErrInvalidArgument, index, len(codes)))
	}
	node := codes[index-1]
	if node.Content == "" {
		return usageError(fmt.Errorf("%w: code block %d is empty", render.ErrNothingToCopy, index))
	}

	// Copy what the reader view displays for the node.
	var page bytes.Buffer
	if err := render.WriteHTML(&page, tree); err != nil {
		return err
	}
	display, err := render.ParseDisplay(&page)
	if err != nil {
		return err
	}

	primary, legacy := rt.clipboards(f.osc52)
	button := render.NewCopyButton(node,
		render.WithTextSource(display),
		render.WithPrimary(primary),
		render.WithLegacy(legacy),
		render.WithCopyLogger(rt.logger(logging.RenderModule)),
	)
	defer button.Close()

	if !button.Copy(ctx) {
		return withHint(fmt.Errorf("%w: code block %d", ErrCopyFailed, index), hints.ForClipboard())
	}
	rt.infof("copied code block %d", index)
	return nil
}
