package pipeline

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazelbuild/BUILD-file-generator/options"
	"github.com/bazelbuild/BUILD-file-generator/parserio"
)

func testOptions(t *testing.T, raw options.Raw) *options.Options {
	t.Helper()
	opts, err := options.NewOptions(raw)
	require.NoError(t, err)
	return opts
}

func TestRunLinearChainProducesWorkedExampleLabels(t *testing.T) {
	t.Parallel()

	opts := testOptions(t, options.Raw{WorkspaceRoot: "/"})
	p := New(opts)

	in := &parserio.ParserOutput{
		ClassToClass: map[string][]string{
			"com.a.A": {"com.a.B"},
			"com.a.B": {"com.a.C"},
			"com.a.C": {},
		},
		ClassToFile: map[string]string{
			"com.a.A": "/java/com/a/A.java",
			"com.a.B": "/java/com/a/B.java",
			"com.a.C": "/java/com/a/C.java",
		},
		FileToRuleHint: map[string]parserio.RuleHint{
			"/java/com/a/A.java": {Kind: "java_library"},
			"/java/com/a/B.java": {Kind: "java_library"},
			"/java/com/a/C.java": {Kind: "java_library"},
		},
	}

	results, err := p.Run(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "//java/com/a:C", results[0].Rule.Label)
	assert.Equal(t, "//java/com/a:B", results[1].Rule.Label)
	assert.Equal(t, []string{"//java/com/a:C"}, results[1].SuccessorLabels)
	assert.Equal(t, "//java/com/a:A", results[2].Rule.Label)
	assert.Equal(t, []string{"//java/com/a:B"}, results[2].SuccessorLabels)
}

func TestRunExcludesGeneratedClasses(t *testing.T) {
	t.Parallel()

	opts := testOptions(t, options.Raw{WorkspaceRoot: "/"})
	p := New(opts)

	in := &parserio.ParserOutput{
		ClassToClass: map[string][]string{
			"com.a.A":           {},
			"com.a.AutoValue_A": {},
		},
		ClassToFile: map[string]string{
			"com.a.A":           "/java/com/a/A.java",
			"com.a.AutoValue_A": "/java/com/a/AutoValue_A.java",
		},
		FileToRuleHint: map[string]parserio.RuleHint{
			"/java/com/a/A.java":           {Kind: "java_library"},
			"/java/com/a/AutoValue_A.java": {Kind: "java_library"},
		},
	}

	results, err := p.Run(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "//java/com/a:A", results[0].Rule.Label)
}

func TestRunFailsWhenDependencyClassCannotBeResolved(t *testing.T) {
	t.Parallel()

	opts := testOptions(t, options.Raw{WorkspaceRoot: "/", ResolveThreshold: 0.99})
	p := New(opts)

	in := &parserio.ParserOutput{
		ClassToClass: map[string][]string{
			"com.a.A": {"com.b.External"},
		},
		ClassToFile: map[string]string{
			"com.a.A": "/java/com/a/A.java",
		},
		FileToRuleHint: map[string]parserio.RuleHint{
			"/java/com/a/A.java": {Kind: "java_library"},
		},
	}

	_, err := p.Run(context.Background(), in)
	require.Error(t, err)
}

func TestRunUsesUserMappingForExternalDependency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mappingPath := dir + "/mapping.csv"
	require.NoError(t, os.WriteFile(mappingPath, []byte("com.b.External,//third_party:external\n"), 0o644))

	opts := testOptions(t, options.Raw{WorkspaceRoot: "/", UserMappingPath: mappingPath})
	p := New(opts)

	in := &parserio.ParserOutput{
		ClassToClass: map[string][]string{
			"com.a.A": {"com.b.External"},
		},
		ClassToFile: map[string]string{
			"com.a.A": "/java/com/a/A.java",
		},
		FileToRuleHint: map[string]parserio.RuleHint{
			"/java/com/a/A.java": {Kind: "java_library"},
		},
	}

	results, err := p.Run(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"//third_party:external"}, results[0].SuccessorLabels)
}

