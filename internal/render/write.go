package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rusq/fsadapter"
	"golang.org/x/sync/errgroup"
)

// WriteDocuments renders every document in the requested format and writes
// each to its own file, named after the conversation kind, on the output
// filesystem.  Rendering runs concurrently per document; the conversation
// data is read-only by this point.
func WriteDocuments(fsa fsadapter.FS, t Type, docs []Document) error {
	if _, ok := t.NewRenderer(); !ok {
		return fmt.Errorf("unknown format: %v", t)
	}
	bufs := make([]bytes.Buffer, len(docs))
	var eg errgroup.Group
	for i, doc := range docs {
		eg.Go(func() error {
			r, _ := t.NewRenderer()
			if err := r.Document(&bufs[i], doc); err != nil {
				return fmt.Errorf("rendering %s: %w", doc.Kind, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	r, _ := t.NewRenderer()
	for i, doc := range docs {
		if err := writeFile(fsa, string(doc.Kind)+r.Extension(), &bufs[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(fsa fsadapter.FS, name string, src io.Reader) error {
	f, err := fsa.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}
