// Package assemblyio opens and creates the files the build engine reads
// its two tabular formats from and writes its output to, transparently
// decompressing gzipped input.
package assemblyio

import (
	"bufio"
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
)

const gzipMagic0, gzipMagic1 = 0x1f, 0x8b

type input struct {
	r   io.Reader
	gz  *gzip.Reader
	f   file.File
	ctx context.Context
}

func (in *input) Read(p []byte) (int, error) { return in.r.Read(p) }

func (in *input) Close() error {
	var err error
	if in.gz != nil {
		err = in.gz.Close()
	}
	if cerr := in.f.Close(in.ctx); err == nil {
		err = cerr
	}
	return err
}

// OpenInput opens path for reading, transparently decompressing it if its
// first two bytes are the gzip magic number -- unlike encoding/fastq's
// downsampler, which always assumes gzip, the build engine's tabular
// formats are ordinarily plain text.
func OpenInput(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	br := bufio.NewReader(f.Reader(ctx))
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		_ = f.Close(ctx)
		return nil, errors.E(err, "peek", path)
	}

	in := &input{f: f, ctx: ctx}
	if len(magic) == 2 && magic[0] == gzipMagic0 && magic[1] == gzipMagic1 {
		gz, err := gzip.NewReader(br)
		if err != nil {
			_ = f.Close(ctx)
			return nil, errors.E(err, "gzip", path)
		}
		in.gz = gz
		in.r = gz
	} else {
		in.r = br
	}
	return in, nil
}

type output struct {
	f   file.File
	w   io.Writer
	ctx context.Context
}

func (o *output) Write(p []byte) (int, error) { return o.w.Write(p) }
func (o *output) Close() error                { return o.f.Close(o.ctx) }

// CreateOutput creates path for writing, truncating any existing file.
func CreateOutput(ctx context.Context, path string) (io.WriteCloser, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E(err, "create", path)
	}
	return &output{f: f, w: f.Writer(ctx), ctx: ctx}, nil
}
