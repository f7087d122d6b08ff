package server

import (
	"encoding/json"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/faceframebeauty/faceframe/contact"
	"github.com/faceframebeauty/faceframe/content"
)

type errorBody struct {
	Error string `json:"error"`
}

var notFound = errorBody{Error: "not found"}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.healthz)
	mux.HandleFunc("GET /api/services", s.listServices)
	mux.HandleFunc("GET /api/services/categories", s.serviceCategories)
	mux.HandleFunc("GET /api/services/{id}", s.getService)
	mux.HandleFunc("GET /api/testimonials", s.listTestimonials)
	mux.HandleFunc("GET /api/gallery", s.listGallery)
	mux.HandleFunc("GET /api/gallery/{id}", s.getGalleryItem)
	mux.HandleFunc("GET /api/faqs", s.listFAQs)
	mux.Handle("/api/contact", contact.Handler(s.mailer, s.logger.Named("contact")))
	if s.cfg.AssetsDir != "" {
		mux.Handle("GET /images/", http.StripPrefix("/images/", noListing(http.Dir(s.cfg.AssetsDir))))
	}
	mux.HandleFunc("/api/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFound)
	})
	return s.requestLog(s.recoverer(mux))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

// queryBool reads an optional boolean parameter.
func queryBool(r *http.Request, name string) (value, ok bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	return v, err == nil
}

// queryInt reads an optional integer parameter. present is false when the
// parameter is absent.
func queryInt(r *http.Request, name string) (value int, present, ok bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, true
	}
	v, err := strconv.Atoi(raw)
	return v, true, err == nil
}

func keep[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, v := range items {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listServices(w http.ResponseWriter, r *http.Request) {
	featured, ok := queryBool(r, "featured")
	if !ok {
		badRequest(w, "invalid featured")
		return
	}
	items := s.store.ServicesByCategory(r.URL.Query().Get("category"))
	if featured {
		items = keep(items, func(v content.Service) bool { return v.Featured })
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) serviceCategories(w http.ResponseWriter, _ *http.Request) {
	cats := s.store.ServiceCategories()
	if cats == nil {
		cats = []string{}
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) getService(w http.ResponseWriter, r *http.Request) {
	svc, err := s.store.Service(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFound)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (s *Server) listTestimonials(w http.ResponseWriter, r *http.Request) {
	featured, ok := queryBool(r, "featured")
	if !ok {
		badRequest(w, "invalid featured")
		return
	}
	items := s.store.TestimonialsByService(r.URL.Query().Get("service"))
	if featured {
		items = keep(items, func(v content.Testimonial) bool { return v.Featured })
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) listGallery(w http.ResponseWriter, r *http.Request) {
	featured, ok := queryBool(r, "featured")
	if !ok {
		badRequest(w, "invalid featured")
		return
	}
	page, paged, ok := queryInt(r, "page")
	if !ok {
		badRequest(w, "invalid page")
		return
	}
	pageSize, _, ok := queryInt(r, "pageSize")
	if !ok {
		badRequest(w, "invalid pageSize")
		return
	}

	items := s.store.GalleryByCategory(r.URL.Query().Get("category"))
	if featured {
		items = keep(items, func(v content.GalleryItem) bool { return v.Featured })
	}
	if paged {
		writeJSON(w, http.StatusOK, content.Paginate(items, page, pageSize))
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getGalleryItem(w http.ResponseWriter, r *http.Request) {
	item := s.store.GalleryItemByID(r.PathValue("id"))
	if item == nil {
		writeJSON(w, http.StatusNotFound, notFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) listFAQs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.FAQsByCategory(r.URL.Query().Get("category")))
}

// noListing serves files from root and answers 404 for directories.
func noListing(root http.FileSystem) http.Handler {
	files := http.FileServer(root)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, err := root.Open(path.Clean("/" + r.URL.Path))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		info, err := f.Stat()
		f.Close()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
