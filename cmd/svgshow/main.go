// Command svgshow displays SVG documents as presentations:
// it applies the frames and gestures of the display engine to a
// document and writes the transformed SVG, and optionally a raster preview.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
