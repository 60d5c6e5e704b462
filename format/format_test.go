package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qasmtools/cq/parser"
)

func TestASTJSONEncoder(t *testing.T) {
	res := parser.ParseString("version 1.0\nqubits 2\nh q[0]", "t.cq")
	require.Empty(t, res.Errors)

	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf).Encode(res.Root))

	var root astJSONNode
	require.NoError(t, json.Unmarshal(buf.Bytes(), &root))

	assert.Equal(t, "Program", root.Kind)
	require.NotNil(t, root.Location)
	assert.Equal(t, "t.cq", root.Location.File)
	assert.Equal(t, 1, root.Location.FirstLine)

	require.Len(t, root.Children, 3)
	assert.Equal(t, "Version", root.Children[0].Kind)
	assert.Equal(t, "1.0", root.Children[0].Value)
	assert.Equal(t, "Qubits", root.Children[1].Kind)

	inst := root.Children[2]
	assert.Equal(t, "Instruction", inst.Kind)
	assert.Equal(t, "h", inst.Name)
	require.Len(t, inst.Children, 1)
	assert.Equal(t, "Ref", inst.Children[0].Kind)
	assert.Equal(t, "q", inst.Children[0].Name)
}

func TestASTJSONEncoderErrorMarker(t *testing.T) {
	res := parser.ParseString("version ;", "t.cq")
	require.NotEmpty(t, res.Errors)

	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf).Encode(res.Root))

	var root astJSONNode
	require.NoError(t, json.Unmarshal(buf.Bytes(), &root))

	require.Len(t, root.Children, 1)
	assert.Equal(t, "Error", root.Children[0].Kind)
	assert.Contains(t, root.Children[0].Message, "version")
}

func TestTreeEncoder(t *testing.T) {
	res := parser.ParseString("version 1.0\nqubits 2", "t.cq")
	require.Empty(t, res.Errors)

	var buf bytes.Buffer
	require.NoError(t, NewTreeEncoder(&buf).Encode(res.Root))

	want := "program t.cq:1:1..2:8\n" +
		"  version 1.0 t.cq:1:1..11\n" +
		"  qubits t.cq:2:1..8\n" +
		"    int 2 t.cq:2:8\n"
	assert.Equal(t, want, buf.String())
}

func TestTreeEncoderBundle(t *testing.T) {
	res := parser.ParseString("{ h q[0] | x q[1] }", "t.cq")
	require.Empty(t, res.Errors)

	var buf bytes.Buffer
	require.NoError(t, NewTreeEncoder(&buf).Encode(res.Root))

	want := "program t.cq:1:1..19\n" +
		"  bundle t.cq:1:1..19\n" +
		"    instruction h t.cq:1:3..8\n" +
		"      ref q[0] t.cq:1:5..8\n" +
		"    instruction x t.cq:1:12..17\n" +
		"      ref q[1] t.cq:1:14..17\n"
	assert.Equal(t, want, buf.String())
}

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want Diagnostic
	}{
		{
			name: "positioned",
			msg:  "t.cq:1:9: expected version number after 'version', found \";\"",
			want: Diagnostic{File: "t.cq", Line: 1, Column: 9, Text: "expected version number after 'version', found \";\""},
		},
		{
			name: "colon in text",
			msg:  "t.cq:2:3: expected ':' in range",
			want: Diagnostic{File: "t.cq", Line: 2, Column: 3, Text: "expected ':' in range"},
		},
		{
			name: "path with colons",
			msg:  `C:\src\t.cq:3:4: boom`,
			want: Diagnostic{File: `C:\src\t.cq`, Line: 3, Column: 4, Text: "boom"},
		},
		{
			name: "resource error",
			msg:  "cannot open /tmp/x.cq: no such file or directory",
			want: Diagnostic{Text: "cannot open /tmp/x.cq: no such file or directory"},
		},
		{
			name: "truncation notice",
			msg:  "t.cq: too many errors, giving up",
			want: Diagnostic{Text: "t.cq: too many errors, giving up"},
		},
		{
			name: "empty",
			msg:  "",
			want: Diagnostic{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMessage(tt.msg))
		})
	}
}

func TestDiagnosticWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewDiagnosticWriter(&buf, false).WithSource([]byte("version ;\nqubits 2\n"))
	w.Print(`t.cq:1:9: expected version number after 'version', found ";"`)

	want := "t.cq:1:9: expected version number after 'version', found \";\"\n" +
		"    version ;\n" +
		"            ^\n"
	assert.Equal(t, want, buf.String())
}

func TestDiagnosticWriterNoPosition(t *testing.T) {
	var buf bytes.Buffer
	w := NewDiagnosticWriter(&buf, false).WithSource([]byte("version 1.0\n"))
	w.Print("cannot open /tmp/x.cq: no such file or directory")

	assert.Equal(t, "cannot open /tmp/x.cq: no such file or directory\n", buf.String())
}

func TestDiagnosticWriterWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	NewDiagnosticWriter(&buf, false).Print("t.cq:1:9: boom")

	assert.Equal(t, "t.cq:1:9: boom\n", buf.String())
}

func TestDiagnosticWriterPrintAll(t *testing.T) {
	var buf bytes.Buffer
	w := NewDiagnosticWriter(&buf, false).WithSource([]byte("version ;\nmap ;\n"))
	w.PrintAll([]string{
		"t.cq:1:9: expected version number after 'version', found \";\"",
		"t.cq:2:5: expected operand, found \";\"",
	})

	assert.Contains(t, buf.String(), "t.cq:1:9:")
	assert.Contains(t, buf.String(), "t.cq:2:5:")
	assert.Contains(t, buf.String(), "    map ;\n        ^\n")
}
