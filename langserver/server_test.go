package langserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/qasmtools/cq/parser"
)

func TestDiagnosticsFromResultClean(t *testing.T) {
	text := "version 1.0\nqubits 2\n"
	res := parser.ParseString(text, "t.cq")

	diags := diagnosticsFromResult(res, text)
	require.NotNil(t, diags, "must publish an empty list, not nil, to clear old squiggles")
	assert.Empty(t, diags)
}

func TestDiagnosticsFromResultPositioned(t *testing.T) {
	text := "version ;\nqubits 2\n"
	res := parser.ParseString(text, "t.cq")
	require.Len(t, res.Errors, 1)

	diags := diagnosticsFromResult(res, text)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, protocol.UInteger(0), d.Range.Start.Line)
	assert.Equal(t, protocol.UInteger(8), d.Range.Start.Character)
	assert.Equal(t, protocol.UInteger(0), d.Range.End.Line)
	assert.Equal(t, protocol.UInteger(9), d.Range.End.Character, "range should reach end of line")
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	require.NotNil(t, d.Source)
	assert.Equal(t, "cq", *d.Source)
	assert.Contains(t, d.Message, "expected version number")
	assert.NotContains(t, d.Message, "t.cq:", "position prefix should be stripped")
}

func TestDiagnosticsFromResultAtEndOfInput(t *testing.T) {
	text := "version"
	res := parser.ParseString(text, "t.cq")
	require.Len(t, res.Errors, 1)

	diags := diagnosticsFromResult(res, text)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, protocol.UInteger(0), d.Range.Start.Line)
	assert.Equal(t, protocol.UInteger(7), d.Range.Start.Character)
	assert.Equal(t, protocol.UInteger(8), d.Range.End.Character)
}

func TestDiagnosticsFromResultUnpositioned(t *testing.T) {
	res := parser.ParseResult{Errors: []string{"cannot open /tmp/x.cq: no such file or directory"}}

	diags := diagnosticsFromResult(res, "")
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, protocol.Range{}, d.Range)
	assert.Equal(t, "cannot open /tmp/x.cq: no such file or directory", d.Message)
}

func TestDiagnosticsFromResultKeepsOrder(t *testing.T) {
	text := "version ;\nqubits 2\nmap ;\n"
	res := parser.ParseString(text, "t.cq")
	require.Len(t, res.Errors, 2)

	diags := diagnosticsFromResult(res, text)
	require.Len(t, diags, 2)
	assert.Equal(t, protocol.UInteger(0), diags[0].Range.Start.Line)
	assert.Equal(t, protocol.UInteger(2), diags[1].Range.Start.Line)
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"file scheme", "file:///home/dev/bell.cq", "/home/dev/bell.cq"},
		{"file scheme with dots", "file:///home/dev/../dev/bell.cq", "/home/dev/bell.cq"},
		{"bare path", "/home/dev/bell.cq", "/home/dev/bell.cq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uriToPath(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
