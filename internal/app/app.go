package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2/pkg/logger"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"noteboard/internal/canvas"
	"noteboard/internal/config"
	"noteboard/internal/domain"
	"noteboard/internal/imaging"
	mcpserver "noteboard/internal/mcp"
	"noteboard/internal/service"
	"noteboard/internal/storage"
	"noteboard/internal/watcher"
)

// ImagePrefix is the asset server path that image handles are served under.
const ImagePrefix = "/images/"

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context
	cfg config.Config
	log logger.Logger

	events     *wailsEmitter
	closeStore func() error
	images     *imaging.Registry
	viewport   *service.ViewportService
	palettes   *service.PaletteService
	notes      *service.NoteService
	imports    *service.ImportService
	mcp        *mcpserver.Server
	drops      *watcher.DropFolder

	// Serve the MCP tools on stdio next to the window
	serveMCP bool
}

// Options configures New.
type Options struct {
	Config   config.Config
	Logger   logger.Logger
	ServeMCP bool
}

// wailsEmitter implements service.EventEmitter using wailsRuntime.EventsEmit.
// Events go out on the runtime context bound at startup, whatever context
// the caller holds (MCP requests carry their own).
type wailsEmitter struct {
	mu  sync.RWMutex
	ctx context.Context
}

func (e *wailsEmitter) bind(ctx context.Context) {
	e.mu.Lock()
	e.ctx = ctx
	e.mu.Unlock()
}

func (e *wailsEmitter) Emit(_ context.Context, event string, data any) {
	e.mu.RLock()
	ctx := e.ctx
	e.mu.RUnlock()
	if ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(ctx, event, data)
}

// New creates a new App with a fresh session board.
func New(opts Options) (*App, error) {
	events := &wailsEmitter{}
	a, err := newApp(opts, events)
	if err != nil {
		return nil, err
	}
	a.events = events
	return a, nil
}

// newApp wires storage and services around emitter.
func newApp(opts Options, emitter service.EventEmitter) (*App, error) {
	cfg := opts.Config
	store, closeStore, err := storage.OpenNoteStore(cfg.StoreDriver())
	if err != nil {
		return nil, fmt.Errorf("open note store: %w", err)
	}

	images := imaging.NewRegistry(ImagePrefix)
	viewport := service.NewViewportService(cfg.ZoomLimits(), float64(cfg.Window.Width), float64(cfg.Window.Height), emitter)
	palettes := service.NewPaletteService(images, imaging.PaletteOptions{
		Count:         cfg.PaletteCount(),
		SampleSize:    cfg.PaletteSampleSize(),
		MergeDistance: imaging.DefaultPaletteOptions().MergeDistance,
	}, emitter, opts.Logger)
	notes := service.NewNoteService(service.NoteDeps{
		Store:    store,
		Images:   images,
		Viewport: viewport,
		Palettes: palettes,
		Emitter:  emitter,
		Log:      opts.Logger,
		Config:   cfg.Notes,
	})
	imports := service.NewImportService(notes, service.NewToaster(emitter), cfg.Notes, opts.Logger)

	a := &App{
		ctx:        context.Background(),
		cfg:        cfg,
		log:        opts.Logger,
		closeStore: closeStore,
		images:     images,
		viewport:   viewport,
		palettes:   palettes,
		notes:      notes,
		imports:    imports,
		serveMCP:   opts.ServeMCP,
	}
	a.mcp = mcpserver.New(mcpserver.Deps{
		Notes:      notes,
		Viewport:   viewport,
		Palettes:   palettes,
		Imports:    imports,
		NoteWidth:  cfg.Notes.HalfWidth * 2,
		NoteHeight: cfg.Notes.HalfHeight * 2,
	})
	return a, nil
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	if a.events != nil {
		a.events.bind(ctx)
	}

	// Files dragged from the OS; browser-level drops come in through DropImage.
	wailsRuntime.OnFileDrop(ctx, func(x, y int, paths []string) {
		a.dropFiles(float64(x), float64(y), paths)
	})

	a.startDropFolder()

	if a.serveMCP {
		go func() {
			if err := a.mcp.ServeStdio(); err != nil {
				log.Printf("[MCP] stdio server stopped: %v", err)
			}
		}()
	}
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.drops != nil {
		a.drops.Close()
		a.drops = nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	a.palettes.Wait(waitCtx)

	if a.closeStore != nil {
		if err := a.closeStore(); err != nil {
			log.Printf("close note store: %v", err)
		}
	}
}

// AssetHandler serves image handles for the Wails asset server. Requests
// outside ImagePrefix get a 404 so the embedded assets stay authoritative.
func AssetHandler(a *App) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(ImagePrefix, a.images)
	return mux
}

func (a *App) startDropFolder() {
	dir, err := a.cfg.ResolveDropFolder()
	if err != nil {
		log.Printf("drop folder: %v", err)
		return
	}
	if dir == "" {
		return
	}

	drops, err := watcher.NewDropFolder(dir, func(path string) error {
		_, err := a.imports.ImportFile(a.ctx, path)
		return err
	})
	if err != nil {
		log.Printf("drop folder: %v", err)
		return
	}
	a.drops = drops
	log.Printf("drop folder: watching %s", drops.Dir())
}

func (a *App) dropFiles(x, y float64, paths []string) []domain.Note {
	vp := a.viewport.Get()
	target := canvas.Rect{Width: vp.Width, Height: vp.Height}
	return a.imports.DropFiles(a.ctx, canvas.Point{X: x, Y: y}, target, paths)
}
