package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/df07/go-live-raytracer/pkg/scene"
	"github.com/df07/go-live-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port)

	log.Printf("Live Raytracer Web Server")
	log.Printf("Browser UI at http://localhost:%d/", *port)
	for _, e := range webServer.Endpoints() {
		log.Printf("  %-18s %s", e.Path, e.Description)
	}
	log.Printf("Scenes: %s", strings.Join(scene.Names(), ", "))

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
