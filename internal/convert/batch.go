package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/image2xth/internal/imaging"
)

// ListInputs returns the supported image files directly inside dir, in
// lexical order. Subdirectories are not visited.
func ListInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !imaging.IsSupported(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// ConvertDir converts every supported file in dir.
//
// Files are processed by up to Options.Jobs workers. A failed file is
// recorded in its Result and does not stop the others. Results are in the
// same lexical order as ListInputs. The returned error is non-nil only if
// dir cannot be listed.
func (c *Converter) ConvertDir(dir string) ([]Result, error) {
	files, err := ListInputs(dir)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(files))
	var g errgroup.Group
	g.SetLimit(c.opts.Jobs)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			results[i] = c.ConvertFile(f)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}
