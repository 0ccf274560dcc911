package workflows

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Deliverer hands packaged export data to its destination.
type Deliverer interface {
	Deliver(ctx context.Context, data []byte, filename string) error
}

// DirDeliverer writes exports as files in Dir with mode 0600.
// Written records the path of the last file delivered.
type DirDeliverer struct {
	Dir     string
	Written string
}

func (d *DirDeliverer) Deliver(ctx context.Context, data []byte, filename string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	d.Written = path
	return nil
}

// WriterDeliverer writes exports to W, followed by a newline.
type WriterDeliverer struct {
	W io.Writer
}

func (w WriterDeliverer) Deliver(ctx context.Context, data []byte, filename string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := w.W.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}
