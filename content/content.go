// Package content holds the salon's read-only catalog: services,
// testimonials, before/after gallery items and FAQs.
package content

// Service is a bookable treatment.
type Service struct {
	ID          string `json:"id" yaml:"id"`
	Slug        string `json:"slug" yaml:"slug"`
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
	Duration    int    `json:"duration" yaml:"duration"` // minutes
	Price       string `json:"price" yaml:"price"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
	Featured    bool   `json:"featured" yaml:"featured"`
}

// Testimonial is a client review of a service.
type Testimonial struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Service  string `json:"service" yaml:"service"`
	Quote    string `json:"quote" yaml:"quote"`
	Rating   int    `json:"rating" yaml:"rating"`
	Image    string `json:"image,omitempty" yaml:"image,omitempty"`
	Featured bool   `json:"featured" yaml:"featured"`
}

// GalleryItem is one before/after pair shown in a comparison slider.
type GalleryItem struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Category    string `json:"category" yaml:"category"`
	ServiceID   string `json:"serviceId,omitempty" yaml:"serviceId,omitempty"`
	BeforeImage string `json:"beforeImage" yaml:"beforeImage"`
	AfterImage  string `json:"afterImage" yaml:"afterImage"`
	Alt         string `json:"alt,omitempty" yaml:"alt,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Featured    bool   `json:"featured" yaml:"featured"`
}

// FAQ is a question and answer pair.
type FAQ struct {
	ID       string `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
	Category string `json:"category" yaml:"category"`
}

// Page is one page of a paginated listing. CurrentPage is 1-based.
type Page[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

// DefaultPageSize is used when a caller asks for a page size below one.
const DefaultPageSize = 9

// Catalog is a complete content snapshot.
type Catalog struct {
	Services     []Service
	Testimonials []Testimonial
	Gallery      []GalleryItem
	FAQs         []FAQ
}

func (c *Catalog) clone() *Catalog {
	return &Catalog{
		Services:     clone(c.Services),
		Testimonials: clone(c.Testimonials),
		Gallery:      clone(c.Gallery),
		FAQs:         clone(c.FAQs),
	}
}

func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func filter[T any](s []T, keep func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Paginate slices items into one page using the same rules as
// PaginatedGalleryItems.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	p := Page[T]{
		Items:       []T{},
		Total:       total,
		TotalPages:  (total + pageSize - 1) / pageSize,
		CurrentPage: page,
	}
	start := (page - 1) * pageSize
	if start >= total {
		return p
	}
	end := min(start+pageSize, total)
	p.Items = clone(items[start:end])
	return p
}
