package main

import (
	"flag"
	"runtime"

	"glviewport/internal/config"
	"glviewport/internal/graphics"
	"glviewport/internal/viewport"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", config.DefaultFilename, "YAML config file; missing file means defaults")
	assetRoot := flag.String("assets", "", "directory holding the shader sources (overrides assets.root)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		closer.Fatalln(err)
	}
	if *assetRoot != "" {
		cfg.Assets.Root = *assetRoot
	}

	if err := glfw.Init(); err != nil {
		closer.Fatalln(err)
	}

	window, err := viewport.SetupWindow(cfg.Window)
	if err != nil {
		glfw.Terminate()
		closer.Fatalln(err)
	}

	app, err := viewport.NewApp(cfg, window, graphics.NewOpenGL())
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		closer.Fatalln(err)
	}
	// On SIGINT/SIGTERM closer runs this off the main thread, so only
	// non-GL work is bound; the driver reclaims GPU objects at exit.
	closer.Bind(app.StopBackground)

	app.Run()

	app.Close()
	window.Destroy()
	glfw.Terminate()
	closer.Close()
}
