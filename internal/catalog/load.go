package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
)

//go:embed data/size_charts.json
var chartsFS embed.FS

// chartsFile mirrors the JSON layout: an ordered list of charts, each with
// an ordered list of sizes.
type chartsFile struct {
	Charts []struct {
		Category Category `json:"category"`
		Chart
	} `json:"charts"`
}

// Load returns the catalog embedded in the binary. A malformed embedded
// catalog degrades to an empty one with a logged warning; it must never take
// the process down.
func Load() *Catalog {
	data, err := chartsFS.ReadFile("data/size_charts.json")
	if err != nil {
		log.Printf("warning: embedded size charts unavailable: %v", err)
		return empty()
	}
	return loadBytes(data)
}

// LoadFile returns the catalog from an external JSON file, degrading to an
// empty catalog with a logged warning on any error.
func LoadFile(path string) *Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("warning: size charts %s unreadable: %v", path, err)
		return empty()
	}
	return loadBytes(data)
}

func loadBytes(data []byte) *Catalog {
	c, err := parse(data)
	if err != nil {
		log.Printf("warning: size charts malformed: %v", err)
		return empty()
	}
	return c
}

func parse(data []byte) (*Catalog, error) {
	var file chartsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	c := empty()
	for _, entry := range file.Charts {
		if entry.Category == "" {
			return nil, fmt.Errorf("chart %q has no category", entry.Name)
		}
		if _, dup := c.charts[entry.Category]; dup {
			return nil, fmt.Errorf("duplicate category %s", entry.Category)
		}
		if len(entry.Sizes) == 0 {
			return nil, fmt.Errorf("category %s has no sizes", entry.Category)
		}
		c.charts[entry.Category] = entry.Chart
		c.order = append(c.order, entry.Category)
	}
	return c, nil
}

func empty() *Catalog {
	return &Catalog{charts: make(map[Category]Chart)}
}
