package imaging

import (
	"errors"
	"image"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrHandleNotFound is returned for unknown or released image handles.
var ErrHandleNotFound = errors.New("image handle not found")

// Handle describes a registered image.
type Handle struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Mime   string `json:"mime"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type entry struct {
	handle Handle
	data   []byte
	img    image.Image
}

// Registry holds decoded images for the session and serves their bytes
// to the webview under a URL prefix. Registered images stay in memory
// until Release is called.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	prefix  string
	entries map[string]*entry
}

// NewRegistry creates a registry serving images under prefix, e.g. "/images/".
func NewRegistry(prefix string) *Registry {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Registry{prefix: prefix, entries: make(map[string]*entry)}
}

// Register decodes data and stores it under a fresh handle.
func (r *Registry) Register(data []byte) (Handle, error) {
	img, mime, err := Decode(data)
	if err != nil {
		return Handle{}, err
	}
	id := uuid.New().String()
	b := img.Bounds()
	h := Handle{
		ID:     id,
		URL:    r.prefix + id,
		Mime:   mime,
		Width:  b.Dx(),
		Height: b.Dy(),
	}

	r.mu.Lock()
	r.entries[id] = &entry{handle: h, data: data, img: img}
	r.mu.Unlock()
	return h, nil
}

// Image returns the decoded image behind a handle.
func (r *Registry) Image(id string) (image.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, ErrHandleNotFound
	}
	return e.img, nil
}

// Lookup returns the handle metadata.
func (r *Registry) Lookup(id string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return Handle{}, false
	}
	return e.handle, true
}

// Release frees the image behind a handle. Releasing twice is a no-op.
func (r *Registry) Release(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// ServeHTTP serves GET <prefix><id> with the original bytes.
func (r *Registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !strings.HasPrefix(req.URL.Path, r.prefix) {
		http.NotFound(w, req)
		return
	}
	id := strings.TrimPrefix(req.URL.Path, r.prefix)

	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		http.NotFound(w, req)
		return
	}

	w.Header().Set("Content-Type", e.handle.Mime)
	w.Header().Set("Content-Length", strconv.Itoa(len(e.data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if req.Method == http.MethodGet {
		_, _ = w.Write(e.data)
	}
}
