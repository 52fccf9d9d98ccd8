package resolve

import (
	"context"
	"os"
	"testing"
	"time"

	buildgenerrors "github.com/bazelbuild/BUILD-file-generator/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFileInfo struct{ isDir bool }

func (f fakeFileInfo) Name() string       { return "" }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() os.FileMode  { return 0 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return f.isDir }
func (f fakeFileInfo) Sys() any           { return nil }

func withFakeExisting(r *SourceFileResolver, existing map[string]bool) {
	r.stat = func(p string) (os.FileInfo, error) {
		if existing[p] {
			return fakeFileInfo{}, nil
		}
		return nil, os.ErrNotExist
	}
}

func TestSourceFileResolverResolvesFirstHit(t *testing.T) {
	t.Parallel()

	r := NewSourceFileResolver([]string{"/root1", "/root2"}, "/root2", ".java", 0.70)
	withFakeExisting(r, map[string]bool{"/root2/com/a/B.java": true})

	resolved, err := r.Resolve(context.Background(), []string{"com.a.B"})
	require.NoError(t, err)
	require.Contains(t, resolved, "com.a.B")
	assert.Equal(t, "//com/a:B", resolved["com.a.B"])
}

func TestSourceFileResolverFailsBelowThreshold(t *testing.T) {
	t.Parallel()

	r := NewSourceFileResolver([]string{"/root"}, "/root", ".java", 0.70)
	withFakeExisting(r, map[string]bool{"/root/a/A.java": true})

	_, err := r.Resolve(context.Background(), []string{"a.A", "b.B", "c.C", "d.D"})
	require.Error(t, err)
	assert.IsType(t, &buildgenerrors.ResolveCoverageError{}, err)
}

func TestSourceFileResolverSucceedsWithHalfExternal(t *testing.T) {
	t.Parallel()

	r := NewSourceFileResolver([]string{"/root"}, "/root", ".java", 0.70)
	withFakeExisting(r, map[string]bool{"/root/a/A.java": true, "/root/b/B.java": true})

	resolved, err := r.Resolve(context.Background(), []string{"a.A", "b.B", "c.External", "d.External"})
	require.NoError(t, err)
	assert.Len(t, resolved, 2)
}

func TestSourceFileResolverRejectsInnerClassIds(t *testing.T) {
	t.Parallel()

	r := NewSourceFileResolver([]string{"/root"}, "/root", ".java", 0.70)
	_, err := r.Resolve(context.Background(), []string{"a.A$Inner"})
	require.Error(t, err)
	assert.IsType(t, &buildgenerrors.InputInvariantError{}, err)
}
