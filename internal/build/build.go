// Package build renders every page and document of the conference site into
// a directory of static files.
package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/natefinch/atomic"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"impractical.co/miniconf/internal/logging"
	"impractical.co/miniconf/internal/pages"
	"impractical.co/miniconf/internal/sitedata"
)

const tracerName = "impractical.co/miniconf/internal/build"

// StaticDir is the directory of the output the static assets are copied
// into.
const StaticDir = "static"

// ErrNoOutputDir is returned when Options.OutputDir is empty.
var ErrNoOutputDir = errors.New("no output directory set")

// compressible are the extensions of the files Precompress writes
// compressed siblings for.
var compressible = map[string]bool{
	".html": true,
	".json": true,
	".css":  true,
	".js":   true,
	".svg":  true,
	".txt":  true,
}

// Options control a build.
type Options struct {
	// Data is the site's data directory.
	Data fs.FS

	// Templates are the page templates. When nil, the templates compiled
	// into the binary are used.
	Templates fs.FS

	// Static is copied into the StaticDir of the output. Optional.
	Static fs.FS

	// OutputDir is the directory the site is written to. It's created if
	// it doesn't exist; files already in it are overwritten, but not
	// removed.
	OutputDir string

	// Precompress writes a gzip and a zstd compressed copy next to every
	// text file of the output, for servers that can serve them as is.
	Precompress bool
}

// Report summarises a build.
type Report struct {
	Pages      int
	Documents  int
	Assets     int
	Compressed int

	// Fingerprint is the fingerprint of the data the site was built
	// from.
	Fingerprint string
}

type builder struct {
	opts   Options
	report Report
	zstd   *zstd.Encoder
}

// Run loads the site data and writes every page, JSON document, and static
// asset of the site to opts.OutputDir. The build stops at the first error.
// Each file is written atomically, so a failed build never leaves a
// truncated file behind.
func Run(ctx context.Context, opts Options) (report Report, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "build.Run")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	log := logging.FromContext(ctx)

	if opts.OutputDir == "" {
		return Report{}, ErrNoOutputDir
	}
	data, err := sitedata.Load(ctx, opts.Data)
	if err != nil {
		return Report{}, err
	}
	templates := opts.Templates
	if templates == nil {
		templates = pages.DefaultTemplates()
	}
	b := &builder{opts: opts}
	if opts.Precompress {
		b.zstd, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return Report{}, fmt.Errorf("error creating zstd encoder: %w", err)
		}
		defer b.zstd.Close()
	}
	b.report.Fingerprint, err = data.Fingerprint()
	if err != nil {
		return Report{}, err
	}

	router := pages.NewRouter(pages.New(data, templates))
	for _, route := range router.Paths() {
		if err := ctx.Err(); err != nil {
			return b.report, err
		}
		if err := b.route(ctx, router, route); err != nil {
			return b.report, err
		}
	}
	if opts.Static != nil {
		if err := b.copyStatic(ctx); err != nil {
			return b.report, err
		}
	}
	span.SetAttributes(
		attribute.Int("pages", b.report.Pages),
		attribute.Int("documents", b.report.Documents),
		attribute.Int("assets", b.report.Assets),
	)
	log.InfoContext(ctx, "built site", "output", opts.OutputDir,
		"pages", b.report.Pages, "documents", b.report.Documents,
		"assets", b.report.Assets, "compressed", b.report.Compressed)
	return b.report, nil
}

func (b *builder) route(ctx context.Context, router *pages.Router, route string) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "build.route",
		trace.WithAttributes(attribute.String("path", route)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	doc, err := router.Route(ctx, route)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := doc.Write(ctx, &buf); err != nil {
		return fmt.Errorf("error rendering %s: %w", route, err)
	}
	if err := b.write(route, buf.Bytes()); err != nil {
		return err
	}
	if doc.IsPage() {
		b.report.Pages++
	} else {
		b.report.Documents++
	}
	logging.FromContext(ctx).DebugContext(ctx, "wrote document", "path", route, "bytes", buf.Len())
	return nil
}

func (b *builder) copyStatic(ctx context.Context) error {
	return fs.WalkDir(b.opts.Static, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		contents, err := fs.ReadFile(b.opts.Static, name)
		if err != nil {
			return fmt.Errorf("error reading static file %s: %w", name, err)
		}
		if err := b.write(path.Join(StaticDir, name), contents); err != nil {
			return err
		}
		b.report.Assets++
		return nil
	})
}

// write writes contents to name, a slash-separated path relative to the
// output directory, along with its compressed copies.
func (b *builder) write(name string, contents []byte) error {
	if err := writeFile(b.opts.OutputDir, name, contents); err != nil {
		return err
	}
	if !b.opts.Precompress || !compressible[path.Ext(name)] {
		return nil
	}
	var gz bytes.Buffer
	zw, err := gzip.NewWriterLevel(&gz, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("error compressing %s: %w", name, err)
	}
	if _, err := zw.Write(contents); err != nil {
		return fmt.Errorf("error compressing %s: %w", name, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("error compressing %s: %w", name, err)
	}
	if err := writeFile(b.opts.OutputDir, name+".gz", gz.Bytes()); err != nil {
		return err
	}
	if err := writeFile(b.opts.OutputDir, name+".zst", b.zstd.EncodeAll(contents, nil)); err != nil {
		return err
	}
	b.report.Compressed++
	return nil
}

func writeFile(dir, name string, contents []byte) error {
	target := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("error creating directory for %s: %w", name, err)
	}
	if err := atomic.WriteFile(target, bytes.NewReader(contents)); err != nil {
		return fmt.Errorf("error writing %s: %w", name, err)
	}
	return nil
}
