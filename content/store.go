package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrNotFound is returned by lookups that find no record.
var ErrNotFound = errors.New("content: not found")

// Store serves a catalog snapshot to concurrent readers. Every accessor
// returns copies, so callers may modify results freely.
type Store struct {
	dir    string
	logger *zap.Logger

	mu      sync.RWMutex
	catalog *Catalog
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the store's logger.
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open loads dir and returns a Store that can reload from it.
func Open(dir string, opts ...StoreOption) (*Store, error) {
	c, err := Load(dir)
	if err != nil {
		return nil, err
	}
	s := NewStore(c, opts...)
	s.dir = dir
	s.logger.Info("content loaded", zap.String("dir", dir), summary(c))
	return s, nil
}

// NewStore wraps an in-memory catalog. A Store built this way cannot Reload.
func NewStore(c *Catalog, opts ...StoreOption) *Store {
	if c == nil {
		c = &Catalog{}
	}
	s := &Store{catalog: c.clone(), logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Dir returns the directory the store was opened from.
func (s *Store) Dir() string { return s.dir }

// Reload replaces the snapshot with a fresh read of the store's directory.
// On error the previous snapshot is kept.
func (s *Store) Reload() error {
	if s.dir == "" {
		return errors.New("content: store has no directory")
	}
	c, err := Load(s.dir)
	if err != nil {
		return fmt.Errorf("reload content: %w", err)
	}
	s.Replace(c)
	return nil
}

// Replace swaps in a new snapshot.
func (s *Store) Replace(c *Catalog) {
	c = c.clone()
	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()
}

// Snapshot returns a copy of the whole catalog.
func (s *Store) Snapshot() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.clone()
}

func (s *Store) read(fn func(c *Catalog)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.catalog)
}

func summary(c *Catalog) zap.Field {
	return zap.Dict("counts",
		zap.Int("services", len(c.Services)),
		zap.Int("testimonials", len(c.Testimonials)),
		zap.Int("gallery", len(c.Gallery)),
		zap.Int("faqs", len(c.FAQs)),
	)
}

// matchCategory is a case-insensitive comparison where an empty want
// matches everything.
func matchCategory(got, want string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(strings.TrimSpace(got), want)
}

// Services returns every service in catalog order.
func (s *Store) Services() (out []Service) {
	s.read(func(c *Catalog) { out = clone(c.Services) })
	return out
}

// FeaturedServices returns the services flagged as featured.
func (s *Store) FeaturedServices() (out []Service) {
	s.read(func(c *Catalog) {
		out = filter(c.Services, func(v Service) bool { return v.Featured })
	})
	return out
}

// ServiceByID returns the service with id, or nil.
func (s *Store) ServiceByID(id string) *Service {
	return s.findService(func(v Service) bool { return v.ID == id })
}

// ServiceBySlug returns the service with slug, or nil.
func (s *Store) ServiceBySlug(slug string) *Service {
	return s.findService(func(v Service) bool { return v.Slug == slug })
}

// Service looks a service up by id, then by slug.
func (s *Store) Service(idOrSlug string) (Service, error) {
	if v := s.ServiceByID(idOrSlug); v != nil {
		return *v, nil
	}
	if v := s.ServiceBySlug(idOrSlug); v != nil {
		return *v, nil
	}
	return Service{}, fmt.Errorf("service %q: %w", idOrSlug, ErrNotFound)
}

func (s *Store) findService(match func(Service) bool) (found *Service) {
	s.read(func(c *Catalog) {
		for _, v := range c.Services {
			if match(v) {
				found = &v
				return
			}
		}
	})
	return found
}

// ServicesByCategory returns the services in category.
func (s *Store) ServicesByCategory(category string) (out []Service) {
	s.read(func(c *Catalog) {
		out = filter(c.Services, func(v Service) bool { return matchCategory(v.Category, category) })
	})
	return out
}

// ServiceCategories returns the distinct service categories, sorted.
func (s *Store) ServiceCategories() []string {
	seen := make(map[string]bool)
	var out []string
	s.read(func(c *Catalog) {
		for _, v := range c.Services {
			key := strings.ToLower(strings.TrimSpace(v.Category))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, strings.TrimSpace(v.Category))
		}
	})
	sort.Strings(out)
	return out
}

// Testimonials returns every testimonial.
func (s *Store) Testimonials() (out []Testimonial) {
	s.read(func(c *Catalog) { out = clone(c.Testimonials) })
	return out
}

// FeaturedTestimonials returns the testimonials flagged as featured.
func (s *Store) FeaturedTestimonials() (out []Testimonial) {
	s.read(func(c *Catalog) {
		out = filter(c.Testimonials, func(v Testimonial) bool { return v.Featured })
	})
	return out
}

// TestimonialsByService returns the testimonials for a service name.
func (s *Store) TestimonialsByService(service string) (out []Testimonial) {
	s.read(func(c *Catalog) {
		out = filter(c.Testimonials, func(v Testimonial) bool { return matchCategory(v.Service, service) })
	})
	return out
}

// GalleryItems returns every gallery item.
func (s *Store) GalleryItems() (out []GalleryItem) {
	s.read(func(c *Catalog) { out = clone(c.Gallery) })
	return out
}

// FeaturedGalleryItems returns the gallery items flagged as featured.
func (s *Store) FeaturedGalleryItems() (out []GalleryItem) {
	s.read(func(c *Catalog) {
		out = filter(c.Gallery, func(v GalleryItem) bool { return v.Featured })
	})
	return out
}

// GalleryItemByID returns the gallery item with id, or nil.
func (s *Store) GalleryItemByID(id string) (found *GalleryItem) {
	s.read(func(c *Catalog) {
		for _, v := range c.Gallery {
			if v.ID == id {
				found = &v
				return
			}
		}
	})
	return found
}

// GalleryByCategory returns the gallery items in category.
func (s *Store) GalleryByCategory(category string) (out []GalleryItem) {
	s.read(func(c *Catalog) {
		out = filter(c.Gallery, func(v GalleryItem) bool { return matchCategory(v.Category, category) })
	})
	return out
}

// PaginatedGalleryItems returns one page of the gallery. A page below one is
// treated as the first page and a page size below one as DefaultPageSize. A
// page past the end has no items.
func (s *Store) PaginatedGalleryItems(page, pageSize int) (p Page[GalleryItem]) {
	s.read(func(c *Catalog) { p = Paginate(c.Gallery, page, pageSize) })
	return p
}

// FAQs returns every FAQ.
func (s *Store) FAQs() (out []FAQ) {
	s.read(func(c *Catalog) { out = clone(c.FAQs) })
	return out
}

// FAQsByCategory returns the FAQs in category.
func (s *Store) FAQsByCategory(category string) (out []FAQ) {
	s.read(func(c *Catalog) {
		out = filter(c.FAQs, func(v FAQ) bool { return matchCategory(v.Category, category) })
	})
	return out
}
