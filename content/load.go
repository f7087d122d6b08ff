package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Collection names. A file belongs to a collection when its base name is the
// collection name, or when it sits in a directory of that name.
const (
	CollectionServices     = "services"
	CollectionTestimonials = "testimonials"
	CollectionGallery      = "gallery"
	CollectionFAQs         = "faqs"
)

var collections = []string{CollectionServices, CollectionTestimonials, CollectionGallery, CollectionFAQs}

// contentExt lists the file extensions Load reads.
const contentExt = "{json,yaml,yml}"

// Load reads every collection under dir. A missing collection is empty; a
// malformed file or a record without an id is an error.
func Load(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir: %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS is Load over an fs.FS.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var c Catalog
	var err error
	if c.Services, err = loadCollection[Service](fsys, CollectionServices, func(s Service) string { return s.ID }); err != nil {
		return nil, err
	}
	if c.Testimonials, err = loadCollection[Testimonial](fsys, CollectionTestimonials, func(t Testimonial) string { return t.ID }); err != nil {
		return nil, err
	}
	if c.Gallery, err = loadCollection[GalleryItem](fsys, CollectionGallery, func(g GalleryItem) string { return g.ID }); err != nil {
		return nil, err
	}
	if c.FAQs, err = loadCollection[FAQ](fsys, CollectionFAQs, func(f FAQ) string { return f.ID }); err != nil {
		return nil, err
	}
	return &c, nil
}

// files returns the sorted paths that make up a collection.
func files(fsys fs.FS, name string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range []string{
		"**/" + name + "." + contentExt,
		"**/" + name + "/**/*." + contentExt,
	} {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func loadCollection[T any](fsys fs.FS, name string, id func(T) string) ([]T, error) {
	paths, err := files(fsys, name)
	if err != nil {
		return nil, err
	}
	out := []T{}
	ids := make(map[string]string)
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		records, err := decode[T](p, data)
		if err != nil {
			return nil, err
		}
		for i, r := range records {
			key := strings.TrimSpace(id(r))
			if key == "" {
				return nil, fmt.Errorf("%s: record %d: %w", p, i, ErrMissingID)
			}
			if prev, dup := ids[key]; dup {
				return nil, fmt.Errorf("%s: duplicate %s id %q (first in %s)", p, name, key, prev)
			}
			ids[key] = p
		}
		out = append(out, records...)
	}
	return out, nil
}

// ErrMissingID is returned for a record without an id.
var ErrMissingID = errors.New("missing id")

func decode[T any](p string, data []byte) ([]T, error) {
	var records []T
	switch path.Ext(p) {
	case ".json":
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
	default:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
	}
	return records, nil
}

func isContentFile(name string) bool {
	ok, _ := doublestar.Match("*."+contentExt, path.Base(strings.ReplaceAll(name, "\\", "/")))
	return ok
}
