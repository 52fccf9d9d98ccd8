package resolve

import (
	"context"
	"strings"
	"testing"

	buildgenerrors "github.com/bazelbuild/BUILD-file-generator/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMappingResolverParsesLines(t *testing.T) {
	t.Parallel()

	r, err := LoadUserMapping(strings.NewReader("com.a.A,//third_party:a\ncom.b.B,//third_party:b\n"))
	require.NoError(t, err)

	resolved, err := r.Resolve(context.Background(), []string{"com.a.A", "com.c.C"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"com.a.A": "//third_party:a"}, resolved)
}

func TestUserMappingResolverRejectsInnerClassKey(t *testing.T) {
	t.Parallel()

	_, err := LoadUserMapping(strings.NewReader("com.a.A$Inner,//x:y\n"))
	require.Error(t, err)
	assert.IsType(t, &buildgenerrors.UserMappingError{}, err)
}

func TestUserMappingResolverRejectsConflictingDuplicate(t *testing.T) {
	t.Parallel()

	_, err := LoadUserMapping(strings.NewReader("com.a.A,//x:y\ncom.a.A,//x:z\n"))
	require.Error(t, err)
}

func TestUserMappingResolverAllowsIdenticalDuplicate(t *testing.T) {
	t.Parallel()

	r, err := LoadUserMapping(strings.NewReader("com.a.A,//x:y\ncom.a.A,//x:y\n"))
	require.NoError(t, err)
	resolved, err := r.Resolve(context.Background(), []string{"com.a.A"})
	require.NoError(t, err)
	assert.Equal(t, "//x:y", resolved["com.a.A"])
}
