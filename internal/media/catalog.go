// Package media enumerates files under the known media roots and serves
// random picks with public URL formatting.
package media

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	appErrors "github.com/noah-isme/edu-fixtures/pkg/errors"
)

// Category names the known media roots.
const (
	ProfilePics  = "profile_pics"
	CourseDocPDF = "course_docs/pdf"
	CourseDocImg = "course_docs/images"
	CourseDocXls = "course_docs/excel"
	RoomPics     = "room_pics"
	Regulations  = "regulations"
)

var requiredCategories = []string{ProfilePics, CourseDocPDF, CourseDocImg, CourseDocXls}
var optionalCategories = []string{RoomPics, Regulations}

// Catalog indexes media files by category and builds public URLs.
type Catalog struct {
	files    map[string][]string
	baseURL  string
	bucket   string
	rng      *rand.Rand
	warnings []string
}

// Scan walks the media directory and indexes the known categories.
func Scan(dir, baseURL, bucket string, rng *rand.Rand) (*Catalog, error) {
	c := &Catalog{
		files:   make(map[string][]string),
		baseURL: baseURL,
		bucket:  bucket,
		rng:     rng,
	}
	for _, cat := range requiredCategories {
		names, err := listFiles(filepath.Join(dir, filepath.FromSlash(cat)))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrConfig.Code, appErrors.ErrConfig.Severity, fmt.Sprintf("required media folder %s is missing", cat))
		}
		if len(names) == 0 {
			return nil, appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("required media folder %s is empty", cat))
		}
		c.files[cat] = names
	}
	for _, cat := range optionalCategories {
		names, err := listFiles(filepath.Join(dir, filepath.FromSlash(cat)))
		if err != nil || len(names) == 0 {
			c.warnings = append(c.warnings, fmt.Sprintf("optional media folder %s is missing or empty", cat))
			continue
		}
		c.files[cat] = names
	}
	return c, nil
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Pick returns a random filename from the category, or "" when empty.
func (c *Catalog) Pick(category string) string {
	names := c.files[category]
	if len(names) == 0 {
		return ""
	}
	return names[c.rng.Intn(len(names))]
}

// PickURL returns a public URL for a random file of the category, or "" when empty.
func (c *Catalog) PickURL(category string) string {
	name := c.Pick(category)
	if name == "" {
		return ""
	}
	return c.URL(name)
}

// URL formats the public URL of a media file.
func (c *Catalog) URL(name string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.bucket, name)
}

// Warnings lists missing optional folders to surface as output comments.
func (c *Catalog) Warnings() []string {
	return c.warnings
}
