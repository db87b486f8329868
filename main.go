package main

import (
	"embed"
	"os"
	"path/filepath"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	boardApp "noteboard/internal/app"
	"noteboard/internal/config"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	// `noteboard mcp`: agent tools on stdio, no window
	if len(os.Args) > 1 && os.Args[1] == "mcp" {
		boardApp.ServeMCP()
		return
	}
	serveMCP := len(os.Args) > 1 && os.Args[1] == "--mcp"

	cfg, err := config.Load()
	if err != nil {
		println("Config error, using defaults:", err.Error())
		cfg = config.Default()
	}

	// Stdout carries the MCP protocol when --mcp is set.
	var appLogger logger.Logger = logger.NewDefaultLogger()
	if serveMCP {
		if path, err := cfg.ResolveLogFile(); err == nil {
			os.MkdirAll(filepath.Dir(path), 0o755)
			appLogger = logger.NewFileLogger(path)
		}
	}

	app, err := boardApp.New(boardApp.Options{
		Config:   cfg,
		Logger:   appLogger,
		ServeMCP: serveMCP,
	})
	if err != nil {
		println("Error:", err.Error())
		os.Exit(1)
	}

	// macOS needs an Edit menu for Cmd+C/V/X/A to reach the WebView
	appMenu := menu.NewMenu()
	appMenu.Append(menu.EditMenu())

	err = wails.Run(&options.App{
		Title:     "Noteboard",
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		MinWidth:  640,
		MinHeight: 480,
		AssetServer: &assetserver.Options{
			Assets:  assets,
			Handler: boardApp.AssetHandler(app),
		},
		DragAndDrop: &options.DragAndDrop{
			EnableFileDrop: true,
		},
		BackgroundColour: &options.RGBA{R: 245, G: 245, B: 244, A: 1},
		Menu:             appMenu,
		Logger:           appLogger,
		LogLevel:         cfg.LogLevel(),
		OnStartup:        app.Startup,
		OnShutdown:       app.Shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			TitleBar: &mac.TitleBar{
				TitlebarAppearsTransparent: true,
				HideTitle:                  true,
				HideTitleBar:               false,
				FullSizeContent:            true,
				UseToolbar:                 true,
				HideToolbarSeparator:       true,
			},
			About: &mac.AboutInfo{
				Title:   "Noteboard",
				Message: "Infinite canvas for text and image notes",
			},
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
