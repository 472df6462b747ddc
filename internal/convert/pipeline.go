// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/pdiddy/scriptdoc/internal/cache"
	"github.com/pdiddy/scriptdoc/internal/logging"
	"github.com/pdiddy/scriptdoc/internal/render"
	"github.com/pdiddy/scriptdoc/internal/transform"
	"github.com/pdiddy/scriptdoc/pkg/types"
)

// BatchResult holds the outcome of a pipeline run.
type BatchResult struct {
	Converted int
	Skipped   int

	// Conversions lists every document, grouped by output kind in
	// configuration order and by script in listing order.
	Conversions []types.Conversion
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped
}

// Pipeline converts a directory of scripts into every configured output
// kind.
type Pipeline struct {
	fs    afero.Fs
	cfg   types.Config
	opts  Options
	cache *cache.Store
	force bool
	out   io.Writer
	log   *slog.Logger
}

// PipelineOption customizes a Pipeline.
type PipelineOption func(*Pipeline)

// WithCache skips scripts whose content and settings match the record in
// store and records every written document.
func WithCache(store *cache.Store) PipelineOption {
	return func(p *Pipeline) { p.cache = store }
}

// WithForce rewrites every document regardless of the cache.
func WithForce(force bool) PipelineOption {
	return func(p *Pipeline) { p.force = force }
}

// WithLogger sets the diagnostics logger.
func WithLogger(log *slog.Logger) PipelineOption {
	return func(p *Pipeline) { p.log = log }
}

// NewPipeline builds a pipeline reading and writing through fs and printing
// the index listing to out. cfg must have passed config.Validate.
func NewPipeline(fs afero.Fs, cfg types.Config, out io.Writer, opts ...PipelineOption) (*Pipeline, error) {
	syntax, err := transform.NewSyntax(cfg.Comment.Marker, cfg.Comment.Sigil)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		fs:  fs,
		cfg: cfg,
		opts: Options{
			Syntax: syntax,
			Render: RenderOptions(cfg),
		},
		out: out,
		log: logging.NewNop(),
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// RenderOptions derives renderer options from cfg.
func RenderOptions(cfg types.Config) render.Options {
	opts := render.DefaultOptions()
	if cfg.Language != "" {
		opts.Language = cfg.Language
	}
	k := cfg.Kernel
	if k.Name != "" {
		opts.Kernel.Name = k.Name
	}
	if k.DisplayName != "" {
		opts.Kernel.DisplayName = k.DisplayName
	}
	if k.Language != "" {
		opts.Kernel.Language = k.Language
	}
	opts.Kernel.Version = k.Version
	if cfg.Input.Suffix != "" {
		opts.Kernel.FileExtension = cfg.Input.Suffix
	}
	if opts.Kernel.Language != "go" {
		opts.Kernel.MimeType = "text/x-" + opts.Kernel.Language
	}
	return opts
}

// Run converts every script for every configured output kind. The first
// error aborts the batch; documents already written stay in place.
func (p *Pipeline) Run(ctx context.Context) (BatchResult, error) {
	var result BatchResult

	inputs, err := ListInputs(p.fs, p.cfg.Input.Dir, p.cfg.Input.Suffix)
	if err != nil {
		return result, err
	}
	p.log.Info("scanning scripts", "dir", p.cfg.Input.Dir, "suffix", p.cfg.Input.Suffix, "count", len(inputs))

	for i, o := range p.cfg.Outputs() {
		kind, err := render.ParseKind(o.Kind)
		if err != nil {
			return result, err
		}

		convs, err := p.runKind(ctx, kind, o.Dir, inputs)
		if err != nil {
			return result, err
		}

		if i > 0 && len(convs) > 0 {
			fmt.Fprintln(p.out)
		}
		for _, c := range convs {
			fmt.Fprintln(p.out, ListingLine(c))
			switch c.Status {
			case types.ConversionDone:
				result.Converted++
			case types.ConversionSkipped:
				result.Skipped++
			}
		}
		result.Conversions = append(result.Conversions, convs...)
	}

	if p.cache != nil {
		if err := p.prune(ctx, inputs); err != nil {
			return result, err
		}
	}

	if p.cfg.Index != "" {
		if err := WriteManifest(p.fs, p.cfg.Index, NewManifest(p.cfg, result.Conversions)); err != nil {
			return result, err
		}
	}

	p.log.Info("batch finished",
		"converted", result.Converted, "skipped", result.Skipped, "total", result.Total())
	return result, nil
}

// runKind converts all inputs to kind in parallel. The conversions come
// back in listing order.
func (p *Pipeline) runKind(ctx context.Context, kind render.Kind, dir string, inputs []string) ([]types.Conversion, error) {
	convs := make([]types.Conversion, len(inputs))

	jobs := p.cfg.Jobs
	if jobs < 1 {
		jobs = 1
	}
	pl := pool.New().
		WithMaxGoroutines(jobs).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for i, src := range inputs {
		i, src := i, src
		pl.Go(func(ctx context.Context) error {
			c, err := p.convertOne(ctx, i, src, kind, dir)
			convs[i] = c
			return err
		})
	}
	if err := pl.Wait(); err != nil {
		return nil, err
	}
	return convs, nil
}

func (p *Pipeline) convertOne(ctx context.Context, index int, src string, kind render.Kind, dir string) (types.Conversion, error) {
	if err := ctx.Err(); err != nil {
		return types.Conversion{}, err
	}

	name := OutputName(src, kind.Extension())
	c := types.Conversion{
		Index:  index,
		Kind:   string(kind),
		Source: src,
		Dest:   filepath.Join(dir, name),
		Title:  strings.TrimSuffix(ShortName(name), kind.Extension()),
	}

	content, err := afero.ReadFile(p.fs, src)
	if err != nil {
		return c, fmt.Errorf("reading %s: %w", src, err)
	}

	digest := p.digest(content, kind)
	if p.cache != nil && !p.force {
		fresh, err := p.fresh(ctx, c, digest)
		if err != nil {
			return c, err
		}
		if fresh {
			c.Status = types.ConversionSkipped
			p.log.Debug("unchanged", "source", src, "kind", kind)
			return c, nil
		}
	}

	out, err := Convert(content, kind, p.opts)
	if err != nil {
		return c, fmt.Errorf("converting %s: %w", src, err)
	}
	if err := writeAtomic(p.fs, c.Dest, out); err != nil {
		return c, err
	}
	if p.cache != nil {
		if err := p.cache.Record(ctx, src, string(kind), digest, c.Dest); err != nil {
			return c, err
		}
	}

	c.Status = types.ConversionDone
	p.log.Debug("converted", "source", src, "kind", kind, "dest", c.Dest)
	return c, nil
}

// digest covers every setting that changes the rendered bytes.
func (p *Pipeline) digest(content []byte, kind render.Kind) string {
	k := p.opts.Render.Kernel
	return cache.Digest(content,
		string(kind),
		p.opts.Syntax.Marker, p.opts.Syntax.Sigil,
		p.opts.Render.Language,
		k.Name, k.DisplayName, k.Language, k.Version, k.FileExtension, k.MimeType,
	)
}

func (p *Pipeline) fresh(ctx context.Context, c types.Conversion, digest string) (bool, error) {
	e, ok, err := p.cache.Lookup(ctx, c.Source, c.Kind)
	if err != nil || !ok {
		return false, err
	}
	if e.Digest != digest || e.Dest != c.Dest {
		return false, nil
	}
	exists, err := afero.Exists(p.fs, c.Dest)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", c.Dest, err)
	}
	return exists, nil
}

// prune forgets cache records of scripts that are no longer listed.
func (p *Pipeline) prune(ctx context.Context, inputs []string) error {
	listed := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		listed[in] = true
	}
	entries, err := p.cache.Entries(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if listed[e.Source] {
			continue
		}
		p.log.Debug("forgetting removed script", "source", e.Source)
		if err := p.cache.Forget(ctx, e.Source); err != nil {
			return err
		}
		listed[e.Source] = true
	}
	return nil
}

// ListingLine formats one index entry: "N. [title](folder/file)" where
// folder is the last element of the destination folder.
func ListingLine(c types.Conversion) string {
	dir := filepath.Base(filepath.Dir(c.Dest))
	return fmt.Sprintf("%d. [%s](%s)", c.Index, c.Title, path.Join(dir, filepath.Base(c.Dest)))
}

// writeAtomic writes data to a temporary file next to dest and renames it
// into place, so readers never observe a partial document.
func writeAtomic(fs afero.Fs, dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(dest)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", dest, err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(name)
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(name)
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := fs.Rename(name, dest); err != nil {
		fs.Remove(name)
		return fmt.Errorf("renaming into %s: %w", dest, err)
	}
	return nil
}
