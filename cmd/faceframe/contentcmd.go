package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/faceframebeauty/faceframe"
	"github.com/faceframebeauty/faceframe/content"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(faceframe.Palette.Gold.Hex())).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(faceframe.Palette.Charcoal.Hex()))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(faceframe.Palette.Champagne.Hex()))
)

type listFlags struct {
	featured bool
	category string
	page     int
	pageSize int
}

func newContentCmd(a *app) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:       "content {services|testimonials|gallery|faqs}",
		Short:     "List catalog content as a table",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{content.CollectionServices, content.CollectionTestimonials, content.CollectionGallery, content.CollectionFAQs},
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := content.Open(a.cfg.Content.Dir, content.WithLogger(a.logger.Named("content")))
			if err != nil {
				return err
			}
			return renderCollection(a.out, store, args[0], f)
		},
	}
	cmd.Flags().BoolVar(&f.featured, "featured", false, "only featured records")
	cmd.Flags().StringVar(&f.category, "category", "", "filter by category (service name for testimonials)")
	cmd.Flags().IntVar(&f.page, "page", 0, "gallery page, 1-based")
	cmd.Flags().IntVar(&f.pageSize, "page-size", content.DefaultPageSize, "gallery page size")
	return cmd
}

func renderCollection(w io.Writer, store *content.Store, name string, f listFlags) error {
	var headers []string
	var rows [][]string
	footer := ""

	switch name {
	case content.CollectionServices:
		headers = []string{"ID", "Name", "Category", "Duration", "Price", "Featured"}
		for _, s := range store.ServicesByCategory(f.category) {
			if f.featured && !s.Featured {
				continue
			}
			rows = append(rows, []string{s.ID, s.Name, s.Category, strconv.Itoa(s.Duration) + " min", s.Price, mark(s.Featured)})
		}
	case content.CollectionTestimonials:
		headers = []string{"ID", "Name", "Service", "Rating", "Quote"}
		for _, t := range store.TestimonialsByService(f.category) {
			if f.featured && !t.Featured {
				continue
			}
			rows = append(rows, []string{t.ID, t.Name, t.Service, stars(t.Rating), truncate(t.Quote, 48)})
		}
	case content.CollectionGallery:
		headers = []string{"ID", "Title", "Category", "Before", "After"}
		items := store.GalleryByCategory(f.category)
		if f.featured {
			featured := items[:0]
			for _, g := range items {
				if g.Featured {
					featured = append(featured, g)
				}
			}
			items = featured
		}
		if f.page > 0 {
			p := content.Paginate(items, f.page, f.pageSize)
			items = p.Items
			footer = fmt.Sprintf("page %d of %d, %d items", p.CurrentPage, p.TotalPages, p.Total)
		}
		for _, g := range items {
			rows = append(rows, []string{g.ID, g.Title, g.Category, g.BeforeImage, g.AfterImage})
		}
	case content.CollectionFAQs:
		headers = []string{"ID", "Category", "Question"}
		for _, q := range store.FAQsByCategory(f.category) {
			rows = append(rows, []string{q.ID, q.Category, truncate(q.Question, 60)})
		}
	default:
		return fmt.Errorf("unknown collection %q", name)
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("no "+name+" found"))
		return err
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	if footer != "" {
		_, err := fmt.Fprintln(w, mutedStyle.Render(footer))
		return err
	}
	return nil
}

func mark(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func stars(n int) string {
	n = max(0, min(n, 5))
	s := ""
	for i := 0; i < n; i++ {
		s += "*"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
