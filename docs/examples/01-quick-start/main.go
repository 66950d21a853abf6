package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/oarender/pkg/census"
	"github.com/beetlebugorg/oarender/pkg/render"
)

func main() {
	// Load output areas
	m, err := census.NewParser().Parse(context.Background(), "OA_2011_EW_BGC.shp")
	if err != nil {
		log.Fatal(err)
	}

	// Print dataset info
	fmt.Printf("Areas: %d\n", m.Len())
	extent := m.Extent()
	fmt.Printf("Extent: [%.0f,%.0f] to [%.0f,%.0f]\n",
		extent.Min.X(), extent.Min.Y(),
		extent.Max.X(), extent.Max.Y())

	// Draw outlines on the default grid
	out, err := os.Create("grid.png")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	proj := render.DefaultProjection()
	opts := render.DefaultOptions()
	canvas, err := render.NewImageCanvas(proj.Size, opts.Style.Background, out)
	if err != nil {
		log.Fatal(err)
	}
	r, err := render.NewRasterizer(proj, canvas, opts)
	if err != nil {
		log.Fatal(err)
	}
	if err := r.Render(context.Background(), m); err != nil {
		log.Fatal(err)
	}
}
