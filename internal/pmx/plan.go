package pmx

import (
	"fmt"
	"path/filepath"

	"go.followtheprocess.codes/pmx/internal/convert"
)

// plan works out where every file in a batch will be written and returns an error
// for each path that cannot be converted without clobbering something, nil entries
// are safe to convert concurrently.
//
// A conversion is refused when its target is another input of the same batch, or
// when two inputs would be written to the same target.
func plan(paths []string, output string, direction convert.Direction) []error {
	errs := make([]error, len(paths))

	sources := make(map[string]int, len(paths))
	for i, path := range paths {
		sources[absolute(path)] = i
	}

	claimed := make(map[string][]int, len(paths))

	for i, path := range paths {
		resolved := direction
		if resolved == convert.Unknown {
			detected, err := convert.Detect(path)
			if err != nil {
				// Reported by the conversion itself
				continue
			}

			resolved = detected
		}

		dir, name := convert.Target(path, output, resolved)
		target := absolute(filepath.Join(dir, name))

		if other, ok := sources[target]; ok {
			errs[i] = fmt.Errorf(
				"refusing to convert %s: it would overwrite %s which is also being converted, use --to to pick one direction",
				path,
				paths[other],
			)

			continue
		}

		claimed[target] = append(claimed[target], i)
	}

	for target, owners := range claimed {
		if len(owners) < 2 {
			continue
		}

		for _, i := range owners {
			errs[i] = fmt.Errorf("refusing to convert %s: %d files would be written to %s", paths[i], len(owners), target)
		}
	}

	return errs
}

// absolute returns the cleaned absolute form of path, used to compare paths.
func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	return abs
}
