package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	codestory "github.com/alnah/go-codestory"
	"github.com/alnah/go-codestory/internal/assets"
	"github.com/alnah/go-codestory/internal/config"
	"github.com/alnah/go-codestory/internal/dateutil"
	"github.com/alnah/go-codestory/internal/export"
	"github.com/alnah/go-codestory/internal/hints"
	"github.com/alnah/go-codestory/internal/lang"
	"github.com/alnah/go-codestory/internal/logging"
	"github.com/alnah/go-codestory/internal/render"
	"github.com/alnah/go-codestory/internal/tasks"
)

// taskFlags holds flags shared by the task commands.
type taskFlags struct {
	common commonFlags
	source sourceFlags
	lang   string
}

func taskFlagSet(name string, f *taskFlags) *flag.FlagSet {
	fs := newFlagSet(name)
	addSourceFlags(fs, &f.source)
	addCommonFlags(fs, &f.common)
	return fs
}

func (f *taskFlags) apply(c *config.Config) {
	if f.lang != "" {
		c.Language.Target = f.lang
	}
	if f.source.backend != "" {
		c.Backend.URL = f.source.backend
	}
}

// taskError attaches the hint matching a task source failure.
func taskError(err error, taskID string, rt *runtime) error {
	switch {
	case errors.Is(err, tasks.ErrTaskNotReady):
		return withHint(err, hints.ForTaskNotReady(taskID))
	case errors.Is(err, tasks.ErrTimeout):
		return withHint(err, hints.ForTimeout())
	case errors.Is(err, tasks.ErrBackend):
		return withHint(err, hints.ForBackend(rt.cfg.Backend.URL))
	case errors.Is(err, codestory.ErrUnsupportedLanguage):
		return withHint(err, hints.ForUnknownLanguage(lang.Supported()))
	default:
		return err
	}
}

// ---------------------------------------------------------------------------
// files
// ---------------------------------------------------------------------------

func runFiles(ctx context.Context, args []string, env *Environment) error {
	var f taskFlags
	positional, err := parseFlags(taskFlagSet("files", &f), args, 1, 1)
	if err != nil {
		return err
	}
	rt, err := setup(env, f.common, f.apply)
	if err != nil {
		return err
	}

	taskID := positional[0]
	files, err := rt.source(f.source).Files(ctx, taskID)
	if err != nil {
		return taskError(err, taskID, rt)
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTITLE\tBYTES")
	for _, file := range tasks.Normalize(files) {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", file.Name, file.DisplayName(), len(file.Content))
	}
	return tw.Flush()
}

// ---------------------------------------------------------------------------
// status
// ---------------------------------------------------------------------------

// statusSource is a task source that can report job progress.
type statusSource interface {
	Status(ctx context.Context, taskID string) (tasks.Status, error)
}

var _ statusSource = (*tasks.HTTPSource)(nil)

func runStatus(ctx context.Context, args []string, env *Environment) error {
	var f taskFlags
	positional, err := parseFlags(taskFlagSet("status", &f), args, 1, 1)
	if err != nil {
		return err
	}
	rt, err := setup(env, f.common, f.apply)
	if err != nil {
		return err
	}

	taskID := positional[0]
	src, ok := rt.source(f.source).(statusSource)
	if !ok {
		return usageError(ErrStatusNotSupported)
	}
	st, err := src.Status(ctx, taskID)
	if err != nil {
		return taskError(err, taskID, rt)
	}

	fmt.Fprintf(env.Stdout, "%s\t%s\t%d%%", st.TaskID, st.State, st.Progress)
	if st.Message != "" {
		fmt.Fprintf(env.Stdout, "\t%s", st.Message)
	}
	fmt.Fprintln(env.Stdout)
	if st.Error != "" {
		fmt.Fprintf(env.Stderr, "task error: %s\n", st.Error)
	}
	return nil
}

// openTutorial loads taskID through a Reader in the configured language
// and prints a warning per untranslated page.
func openTutorial(ctx context.Context, rt *runtime, flags taskFlags, taskID string) (*codestory.Tutorial, error) {
	svc, err := rt.translator()
	if err != nil {
		return nil, err
	}
	reader := codestory.NewReader(rt.source(flags.source),
		codestory.WithTranslator(svc),
		codestory.WithSourceLanguage(rt.cfg.Language.Source),
		codestory.WithLogger(rt.logger(logging.RootModule)),
	)
	tut, err := reader.Open(ctx, taskID, rt.cfg.Language.Target)
	if err != nil {
		return nil, taskError(err, taskID, rt)
	}
	for _, n := range tut.Notices {
		fmt.Fprintf(rt.env.Stderr, "warning: %s: %v\n", n.File, n)
	}
	return tut, nil
}

// ---------------------------------------------------------------------------
// open
// ---------------------------------------------------------------------------

type openFlags struct {
	task   taskFlags
	output string
}

func openFlagSet(f *openFlags) *flag.FlagSet {
	fs := newFlagSet("open")
	fs.StringVarP(&f.task.lang, "lang", "l", "", "reading language (default language.target)")
	fs.StringVarP(&f.output, "output", "o", "", "write one HTML page per file into this directory")
	addSourceFlags(fs, &f.task.source)
	addCommonFlags(fs, &f.task.common)
	return fs
}

func runOpen(ctx context.Context, args []string, env *Environment) error {
	var f openFlags
	positional, err := parseFlags(openFlagSet(&f), args, 1, 1)
	if err != nil {
		return err
	}
	rt, err := setup(env, f.task.common, f.task.apply)
	if err != nil {
		return err
	}
	tut, err := openTutorial(ctx, rt, f.task, positional[0])
	if err != nil {
		return err
	}

	if f.output == "" {
		for _, p := range tut.Pages {
			fmt.Fprintf(env.Stdout, "%s\t%s\t%d nodes\n", p.Name, p.Title, len(p.Tree.Nodes))
		}
		return nil
	}

	loader, err := rt.assets()
	if err != nil {
		return err
	}
	css, err := loader.LoadStyle(assets.ReaderStyle)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.output, 0o750); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	for _, p := range tut.Pages {
		var buf bytes.Buffer
		if err := render.WritePage(&buf, render.Page{Title: p.Title, CSS: css, Tree: p.Tree}); err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(p.Name), filepath.Ext(p.Name)) + ".html"
		if err := writeOutput(filepath.Join(f.output, name), buf.Bytes(), env); err != nil {
			return err
		}
	}
	rt.infof("wrote %d pages to %s", len(tut.Pages), f.output)
	return nil
}

// ---------------------------------------------------------------------------
// export
// ---------------------------------------------------------------------------

type exportFlags struct {
	task      taskFlags
	output    string
	title     string
	date      string
	highlight string
}

func exportFlagSet(f *exportFlags) *flag.FlagSet {
	fs := newFlagSet("export")
	fs.StringVarP(&f.task.lang, "lang", "l", "", "export language (default language.target)")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default export.output or stdout)")
	fs.StringVar(&f.title, "title", "", "document title (default export.title or the task ID)")
	fs.StringVar(&f.date, "date", "", "cover date: literal, \"auto\" or \"auto:PATTERN\"")
	fs.StringVar(&f.highlight, "highlight", "", "chroma style for code fences")
	addSourceFlags(fs, &f.task.source)
	addCommonFlags(fs, &f.task.common)
	return fs
}

func runExport(ctx context.Context, args []string, env *Environment) error {
	var f exportFlags
	positional, err := parseFlags(exportFlagSet(&f), args, 1, 1)
	if err != nil {
		return err
	}
	rt, err := setup(env, f.task.common, func(c *config.Config) {
		f.task.apply(c)
		if f.output != "" {
			c.Export.Output = f.output
		}
		if f.title != "" {
			c.Export.Title = f.title
		}
		if f.date != "" {
			c.Export.Date = f.date
		}
		if f.highlight != "" {
			c.Export.Highlight = f.highlight
		}
	})
	if err != nil {
		return err
	}

	ec := rt.cfg.Export
	date, err := dateutil.Resolve(ec.Date, env.Now())
	if err != nil {
		return usageError(err)
	}
	loader, err := rt.assets()
	if err != nil {
		return err
	}
	exporter, err := export.New(
		export.WithAssetLoader(loader),
		export.WithHighlightStyle(ec.Highlight),
		export.WithLogger(rt.logger(logging.ExportModule)),
	)
	if errors.Is(err, export.ErrUnknownHighlight) {
		return withHint(err, hints.ForStyleNotFound(export.HighlightStyles()))
	}
	if err != nil {
		return err
	}

	taskID := positional[0]
	tut, err := openTutorial(ctx, rt, f.task, taskID)
	if err != nil {
		return err
	}

	title := ec.Title
	if title == "" {
		title = taskID
	}
	opts := export.Options{Title: title, Language: tut.Language, Date: date}
	if ds, ok := rt.source(f.task.source).(tasks.DirSource); ok {
		opts.SourceDir = filepath.Join(ds.Root, taskID)
	}
	out, err := exporter.Tutorial(ctx, tut.Sections(), opts)
	if err != nil {
		return err
	}
	if err := writeOutput(ec.Output, out, env); err != nil {
		return err
	}
	if ec.Output != "" {
		rt.infof("exported %d sections to %s", len(tut.Pages), ec.Output)
	}
	return nil
}
