package rulekind

import (
	"testing"

	buildgenerrors "github.com/bazelbuild/BUILD-file-generator/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSingleKind(t *testing.T) {
	t.Parallel()

	kind, extra, err := Merge([]Hint{{Path: "A.java", Kind: "java_library"}})
	require.NoError(t, err)
	assert.Equal(t, "java_library", kind)
	assert.Empty(t, extra)
}

func TestMergeLibraryAndTest(t *testing.T) {
	t.Parallel()

	kind, _, err := Merge([]Hint{
		{Path: "A.java", Kind: "java_library"},
		{Path: "ATest.java", Kind: "java_test"},
	})
	require.NoError(t, err)
	assert.Equal(t, "java_test", kind)
}

func TestMergeLibraryAndBinary(t *testing.T) {
	t.Parallel()

	kind, _, err := Merge([]Hint{
		{Path: "A.java", Kind: "java_library"},
		{Path: "Main.java", Kind: "java_binary"},
	})
	require.NoError(t, err)
	assert.Equal(t, "java_binary", kind)
}

func TestMergeImageSubset(t *testing.T) {
	t.Parallel()

	kind, _, err := Merge([]Hint{
		{Path: "A.java", Kind: "java_library"},
		{Path: "Main.java", Kind: "java_binary"},
		{Path: "Img.java", Kind: "java_image"},
	})
	require.NoError(t, err)
	assert.Equal(t, "java_image", kind)
}

func TestMergePrefixMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := Merge([]Hint{
		{Path: "A.java", Kind: "java_library"},
		{Path: "B.py", Kind: "py_library"},
	})
	require.Error(t, err)
	assert.IsType(t, &buildgenerrors.RuleKindPrefixMismatchError{}, err)
}

func TestMergeAmbiguous(t *testing.T) {
	t.Parallel()

	_, _, err := Merge([]Hint{
		{Path: "A.java", Kind: "java_test"},
		{Path: "Main.java", Kind: "java_binary"},
	})
	require.Error(t, err)
	assert.IsType(t, &buildgenerrors.RuleKindMergeAmbiguousError{}, err)
}

func TestMergeExtraCommandsDedup(t *testing.T) {
	t.Parallel()

	_, extra, err := Merge([]Hint{
		{Path: "A.java", Kind: "java_library", ExtraCommands: []string{"set visibility //x:y"}},
		{Path: "B.java", Kind: "java_library", ExtraCommands: []string{"set visibility //x:y", "set tags foo"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"set visibility //x:y", "set tags foo"}, extra)
}
