// Package convert turns a tree of per-language markdown help sources into
// XHP pages and help trees.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/open-cli-collective/mikasa/pkg/md"
)

// TreeSourceName is the markdown file rendered as the help tree of its
// directory. Every other markdown file becomes an XHP page.
const TreeSourceName = "help.md"

var (
	ErrSourceNotDir      = errors.New("source is not a directory")
	ErrDestNotDir        = errors.New("destination is not a directory")
	ErrMissingIdentifier = errors.New("extension identifier is required")
)

// Dialect names the output format of a converted file.
type Dialect string

const (
	DialectXHP  Dialect = "xhp"
	DialectTree Dialect = "tree"
)

// Options configures a conversion run.
type Options struct {
	Src         string
	Dest        string
	Identifier  string
	Base        string
	Languages   []string // empty converts every language directory
	Application string   // tree namespace token; generated when empty

	ShowErrors           bool
	EmphasiseTableHeader bool
	DummyHRule           bool

	Jobs   int // parallel conversions; 0 means GOMAXPROCS
	Logger *slog.Logger
}

// Result describes one converted file.
type Result struct {
	Source  string  `json:"source"`
	Target  string  `json:"target"`
	Lang    string  `json:"lang"`
	Dialect Dialect `json:"dialect"`
}

// job is a source file scheduled for conversion.
type job struct {
	path string
	lang string
	rel  string // path below the language directory, slash separated
}

// Converter converts help sources. It is safe for concurrent use.
type Converter struct {
	opts Options
	log  *slog.Logger
	xhp  *md.XhpRenderer
	tree *md.TreeRenderer
}

// New validates opts and prepares the renderers shared by every file.
func New(opts Options) (*Converter, error) {
	if opts.Identifier == "" {
		return nil, ErrMissingIdentifier
	}
	if opts.Application == "" {
		opts.Application = md.NewApplicationToken(nil)
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Converter{
		opts: opts,
		log:  logger,
		xhp: md.NewXhpRenderer(md.XhpOptions{
			Identifier:           opts.Identifier,
			BaseAddr:             opts.Base,
			ShowErrors:           opts.ShowErrors,
			EmphasiseTableHeader: opts.EmphasiseTableHeader,
			UseDummyHRule:        opts.DummyHRule,
		}),
		tree: md.NewTreeRenderer(md.TreeOptions{
			Identifier:  opts.Identifier,
			Application: opts.Application,
		}),
	}, nil
}

// Application returns the tree namespace token used by this run.
func (c *Converter) Application() string {
	return c.opts.Application
}

// Run converts every selected source file. The first failure cancels the
// remaining work. Results are sorted by target path.
func (c *Converter) Run(ctx context.Context) ([]Result, error) {
	if err := c.prepare(); err != nil {
		return nil, err
	}

	jobs, err := c.discover()
	if err != nil {
		return nil, err
	}
	c.log.Info("Converting help sources", "src", c.opts.Src, "files", len(jobs), "jobs", c.opts.Jobs)

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Jobs)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := c.convert(j)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(a, b int) bool { return results[a].Target < results[b].Target })
	return results, nil
}

// ConvertFile converts a single source file below the source directory.
func (c *Converter) ConvertFile(path string) (Result, error) {
	j, ok, err := c.jobFor(path)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, fmt.Errorf("%s is not a selected markdown source below %s", path, c.opts.Src)
	}
	if err := c.prepare(); err != nil {
		return Result{}, err
	}
	return c.convert(j)
}

// prepare checks the source directory and creates the destination.
func (c *Converter) prepare() error {
	info, err := os.Stat(c.opts.Src)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", c.opts.Src, ErrSourceNotDir)
	}

	info, err = os.Stat(c.opts.Dest)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%s: %w", c.opts.Dest, ErrDestNotDir)
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(c.opts.Dest, 0755); err != nil {
			return fmt.Errorf("failed to create destination directory: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to read destination directory: %w", err)
	}
	return nil
}

// discover lists the markdown files of every selected language directory.
func (c *Converter) discover() ([]job, error) {
	entries, err := os.ReadDir(c.opts.Src)
	if err != nil {
		return nil, fmt.Errorf("failed to list source directory: %w", err)
	}

	var jobs []job
	for _, entry := range entries {
		if !entry.IsDir() || !c.selected(entry.Name()) {
			continue
		}
		lang := entry.Name()
		langDir := filepath.Join(c.opts.Src, lang)
		err := filepath.WalkDir(langDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != ".md" {
				return nil
			}
			rel, err := filepath.Rel(langDir, path)
			if err != nil {
				return err
			}
			jobs = append(jobs, job{path: path, lang: lang, rel: filepath.ToSlash(rel)})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", langDir, err)
		}
	}
	return jobs, nil
}

// jobFor maps a path below the source directory to its job. ok is false
// for files that are not selected markdown sources.
func (c *Converter) jobFor(path string) (job, bool, error) {
	rel, err := filepath.Rel(c.opts.Src, path)
	if err != nil {
		return job{}, false, err
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 || parts[0] == ".." || filepath.Ext(path) != ".md" {
		return job{}, false, nil
	}
	if !c.selected(parts[0]) {
		return job{}, false, nil
	}
	return job{path: path, lang: parts[0], rel: strings.Join(parts[1:], "/")}, true, nil
}

// selected reports whether the language directory lang is converted.
// Names match the configured languages exactly or as equal BCP 47 tags.
func (c *Converter) selected(lang string) bool {
	if len(c.opts.Languages) == 0 {
		return true
	}
	dirTag, dirErr := language.Parse(lang)
	for _, want := range c.opts.Languages {
		if want == lang {
			return true
		}
		if dirErr != nil {
			continue
		}
		if tag, err := language.Parse(want); err == nil && tag.String() == dirTag.String() {
			return true
		}
	}
	return false
}

// convert renders one file and writes the result.
func (c *Converter) convert(j job) (Result, error) {
	source, err := os.ReadFile(j.path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", j.path, err)
	}

	base := strings.TrimSuffix(j.rel, ".md")
	var (
		out    string
		target string
		dial   Dialect
	)
	if filepath.Base(j.path) == TreeSourceName {
		dial = DialectTree
		target = filepath.Join(c.opts.Dest, j.lang, filepath.FromSlash(base+".tree"))
		out = md.Render(source, c.tree, md.Document{Lang: j.lang})
	} else {
		dial = DialectXHP
		fileName := base + md.TargetSuffix
		target = filepath.Join(c.opts.Dest, j.lang, c.opts.Identifier, filepath.FromSlash(fileName))
		out = md.Render(source, c.xhp, md.Document{FileName: fileName, Lang: j.lang})
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, []byte(out), 0644); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", target, err)
	}

	c.log.Debug("Converted", "path", j.path, "target", target, "lang", j.lang, "dialect", dial)
	return Result{Source: j.path, Target: target, Lang: j.lang, Dialect: dial}, nil
}
