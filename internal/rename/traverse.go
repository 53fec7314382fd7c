package rename

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"nfcrename/internal/config"
)

// subtree lists every entry below root, excluding root itself, in the order
// they must be normalized.
func subtree(ctx context.Context, root, traversal string) ([]string, error) {
	if traversal == config.TraversalPathLength {
		return byPathLength(ctx, root)
	}
	var out []string
	if err := postOrder(ctx, root, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// postOrder appends the children of dir depth-first, each directory after
// everything it contains. Symlinked directories are leaves.
func postOrder(ctx context.Context, dir string, out *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := postOrder(ctx, child, out); err != nil {
				return err
			}
		}
		*out = append(*out, child)
	}
	return nil
}

// byPathLength orders the subtree by descending path length. Deeper entries
// usually have longer paths; ties keep walk order.
func byPathLength(ctx context.Context, root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path != root {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out, nil
}
