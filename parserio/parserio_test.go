package parserio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestDecodeRoundTrips(t *testing.T) {
	t.Parallel()

	in := &ParserOutput{
		ClassToClass: map[string][]string{"com.a.A": {"com.a.B"}},
		FileToRuleHint: map[string]RuleHint{
			"/java/com/a/A.java": {Kind: "java_library", ExtraCommands: []string{"add tag foo"}},
		},
		ClassToFile: map[string]string{"com.a.A": "/java/com/a/A.java"},
	}

	encoded, err := msgpack.Marshal(in)
	require.NoError(t, err)

	out, err := Decode(bytes.NewReader(encoded))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeFillsNilMapsWithEmpty(t *testing.T) {
	t.Parallel()

	encoded, err := msgpack.Marshal(&ParserOutput{})
	require.NoError(t, err)

	out, err := Decode(bytes.NewReader(encoded))
	require.NoError(t, err)
	assert.NotNil(t, out.ClassToClass)
	assert.NotNil(t, out.FileToRuleHint)
	assert.NotNil(t, out.ClassToFile)
}

func TestWriteCommandStreamNewlineTerminated(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCommandStream(&buf, []string{"new java_library A|//x:__pkg__", "add srcs A.java|//x:A"}))
	assert.Equal(t, "new java_library A|//x:__pkg__\nadd srcs A.java|//x:A\n", buf.String())
}
