package main

import (
	"context"
	"fmt"
	"log"

	"github.com/beetlebugorg/oarender/pkg/census"
	"github.com/paulmach/orb"
)

func main() {
	m, err := census.NewParser().Parse(context.Background(), "OA_2011_EW_BGC.shp")
	if err != nil {
		log.Fatal(err)
	}

	// Viewport around central Cardiff, in British National Grid metres
	viewport := orb.Bound{
		Min: orb.Point{315000, 174000},
		Max: orb.Point{320000, 178000},
	}

	// Query R-tree index for areas overlapping the viewport
	areas := m.AreasInBounds(viewport)
	fmt.Printf("Visible areas: %d\n", len(areas))

	for _, area := range areas {
		pole, err := area.CachedCentroid()
		if err != nil {
			fmt.Printf("  %s: %v\n", area.Code, err)
			continue
		}
		fmt.Printf("  %s %s (%.0f, %.0f)\n", area.Code, area.Name, pole.X(), pole.Y())
	}
}
