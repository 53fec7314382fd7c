package rename

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nfcrename/internal/config"
	"nfcrename/internal/testsupport"
)

func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a", "b", "c.txt"), "c")
	testsupport.WriteFile(t, filepath.Join(root, "a", "d.txt"), "d")
	testsupport.WriteFile(t, filepath.Join(root, "e.txt"), "e")
	testsupport.MkdirAll(t, filepath.Join(root, "f"))
	return root
}

func relativize(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestSubtreePostOrder(t *testing.T) {
	root := buildTree(t)
	got, err := subtree(context.Background(), root, config.TraversalPostOrder)
	if err != nil {
		t.Fatalf("subtree: %v", err)
	}
	want := []string{"a/b/c.txt", "a/b", "a/d.txt", "a", "e.txt", "f"}
	if strings.Join(relativize(t, root, got), ",") != strings.Join(want, ",") {
		t.Fatalf("post-order = %v, want %v", relativize(t, root, got), want)
	}
}

func TestSubtreeDescendantsPrecedeAncestors(t *testing.T) {
	for _, traversal := range []string{config.TraversalPostOrder, config.TraversalPathLength} {
		t.Run(traversal, func(t *testing.T) {
			root := buildTree(t)
			got, err := subtree(context.Background(), root, traversal)
			if err != nil {
				t.Fatalf("subtree: %v", err)
			}
			if len(got) != 6 {
				t.Fatalf("expected 6 entries, got %v", got)
			}
			index := map[string]int{}
			for i, p := range got {
				index[p] = i
			}
			for p, i := range index {
				parent := filepath.Dir(p)
				if j, ok := index[parent]; ok && j < i {
					t.Fatalf("%s listed before its child %s", parent, p)
				}
			}
		})
	}
}

func TestSubtreeDoesNotFollowSymlinkedDirectories(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(outside, "hidden.txt"), "x")
	if err := os.Symlink(outside, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	for _, traversal := range []string{config.TraversalPostOrder, config.TraversalPathLength} {
		got, err := subtree(context.Background(), root, traversal)
		if err != nil {
			t.Fatalf("%s: %v", traversal, err)
		}
		if len(got) != 1 || filepath.Base(got[0]) != "link" {
			t.Fatalf("%s: expected only the link entry, got %v", traversal, got)
		}
	}
}

func TestSubtreeHonoursCancellation(t *testing.T) {
	root := buildTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := subtree(ctx, root, config.TraversalPostOrder); err == nil {
		t.Fatal("expected cancellation error")
	}
}
