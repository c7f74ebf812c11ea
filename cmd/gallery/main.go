// filepath: cmd/gallery/main.go
package main

import (
	"github.com/knkgun/gallery/internal/cli"

	// Import docs for Swagger
	_ "github.com/knkgun/gallery/docs"
)

// @title Gallery Preview-API
// @version 1.0.0
// @description Previews, thumbnails and downloads of gallery files.
// @BasePath /api
// @schemes http

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
