package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	svc := NewMarkdownService()

	tests := []struct {
		in   string
		want string
	}{
		{"olá", "olá"},
		{"<b>negrito</b> texto", "negrito texto"},
		{`<script>alert("x")</script>oi`, "oi"},
		{"a & b < c", "a & b < c"},
		{"  espaços  ", "espaços"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.PlainText(tt.in))
		})
	}
}

func TestToHTMLSanitized_StripsScripts(t *testing.T) {
	svc := NewMarkdownService()

	out, err := svc.ToHTMLSanitized("# Título\n\n**forte** <script>alert(1)</script>")
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Título</h1>")
	assert.Contains(t, out, "<strong>forte</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestEscapeInline(t *testing.T) {
	svc := NewMarkdownService()

	out, err := svc.ToHTML(svc.EscapeInline("*não* é _itálico_"))
	require.NoError(t, err)
	assert.NotContains(t, out, "<em>")
	assert.True(t, strings.Contains(out, "*não*"))
}
