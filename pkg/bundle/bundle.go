// pkg/bundle/bundle.go
package bundle

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/arc-language/cudabind/pkg/stamp"
)

// Extension is the bundle file suffix
const Extension = ".tar.xz"

// epoch is written as every entry's mtime so bundles are reproducible
var epoch = time.Unix(0, 0).UTC()

// Write packs the regular files under dir into an xz-compressed tar stream.
// Entries are added in lexical order with fixed metadata, so the same
// bindings always produce the same bytes. The rebuild stamp is skipped.
func Write(w io.Writer, dir string) error {
	xzWriter, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating xz writer: %w", err)
	}
	tw := tar.NewWriter(xzWriter)

	count := 0
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || d.Name() == stamp.FileName {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if err := addFile(tw, path, filepath.ToSlash(rel)); err != nil {
			return fmt.Errorf("adding %s: %w", rel, err)
		}
		count++
		return nil
	})
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no files to bundle in %s", dir)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing tar stream: %w", err)
	}
	if err := xzWriter.Close(); err != nil {
		return fmt.Errorf("closing xz stream: %w", err)
	}
	return nil
}

func addFile(tw *tar.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Mode:     0644,
		Size:     info.Size(),
		ModTime:  epoch,
		Format:   tar.FormatUSTAR,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err = io.Copy(tw, f)
	return err
}

// WriteFile writes the bundle for dir to path
func WriteFile(path, dir string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating bundle: %w", err)
	}

	if err := Write(f, dir); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// Entry is a file read back from a bundle
type Entry struct {
	Name string
	Data []byte
}

// Read decodes a bundle stream
func Read(r io.Reader) ([]Entry, error) {
	xzReader, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("creating xz reader: %w", err)
	}

	tr := tar.NewReader(xzReader)
	var entries []Entry
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar: %w", err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", hdr.Name, err)
		}
		entries = append(entries, Entry{Name: hdr.Name, Data: data})
	}
	return entries, nil
}
