package watcher

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"noteboard/internal/imaging"
)

// ImportHandler is called with the absolute path of an image that appeared
// in the drop folder. A returned error leaves the file eligible for another
// attempt on its next write.
type ImportHandler func(path string) error

// DropFolder watches a directory and imports every image written into it.
// Screenshot tools that save into the folder put the image on the board.
type DropFolder struct {
	watcher  *fsnotify.Watcher
	dir      string
	onImage  ImportHandler
	mu       sync.Mutex
	imported map[string]bool // absPath -> imported
	done     chan struct{}
}

// NewDropFolder creates dir if needed and starts watching it.
func NewDropFolder(dir string, onImage ImportHandler) (*DropFolder, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("create drop folder: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(absDir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", absDir, err)
	}

	d := &DropFolder{
		watcher:  w,
		dir:      absDir,
		onImage:  onImage,
		imported: make(map[string]bool),
		done:     make(chan struct{}),
	}

	go d.watchLoop()

	return d, nil
}

// Dir returns the watched directory.
func (d *DropFolder) Dir() string { return d.dir }

// Close stops the watcher and waits for the loop to exit.
func (d *DropFolder) Close() error {
	err := d.watcher.Close()
	<-d.done
	return err
}

func (d *DropFolder) watchLoop() {
	defer close(d.done)
	for {
		select {
		case event, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			d.handle(event)
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("drop folder: watcher error: %v", err)
		}
	}
}

func (d *DropFolder) handle(event fsnotify.Event) {
	absPath, err := filepath.Abs(event.Name)
	if err != nil || !imaging.IsImagePath(absPath) {
		return
	}

	// A removed or renamed file may come back with new contents.
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		d.mu.Lock()
		delete(d.imported, absPath)
		d.mu.Unlock()
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	d.mu.Lock()
	done := d.imported[absPath]
	d.mu.Unlock()
	if done || d.onImage == nil {
		return
	}

	// Create often fires before the writer finishes; the following Write retries.
	if err := d.onImage(absPath); err != nil {
		log.Printf("drop folder: import %s: %v", absPath, err)
		return
	}

	d.mu.Lock()
	d.imported[absPath] = true
	d.mu.Unlock()
}
