package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBashAnsiC(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "$'plain'"},
		{"two words", "$'two words'"},
		{"a\nb", `$'a\nb'`},
		{"tab\there", `$'tab\there'`},
		{`back\slash`, `$'back\\slash'`},
		{"it's", `$'it\'s'`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bashAnsiC(tt.in))
	}
}

func TestShSingle(t *testing.T) {
	assert.Equal(t, "'plain'", shSingle("plain"))
	assert.Equal(t, `'it'\''s'`, shSingle("it's"))
	assert.Equal(t, "'two words'", shSingle("two words"))
	assert.Equal(t, "'$HOME'", shSingle("$HOME"))
}

func TestZshDescription(t *testing.T) {
	assert.Equal(t, "value", zshDescription("value", ""))
	assert.Equal(t, "value:a description", zshDescription("value", "a description"))
	assert.Equal(t, `a\:b:uses a\: colon`, zshDescription("a:b", "uses a: colon"))
}

func TestFishSingle(t *testing.T) {
	assert.Equal(t, "'plain'", fishSingle("plain"))
	assert.Equal(t, `'it\'s'`, fishSingle("it's"))
	assert.Equal(t, `'a\\b'`, fishSingle(`a\b`))
}

func TestFigString(t *testing.T) {
	assert.Equal(t, "plain", figString("plain"))
	assert.Equal(t, `say \"hi\"`, figString(`say "hi"`))
	assert.Equal(t, `line\nbreak`, figString("line\nbreak"))
	assert.Equal(t, `back\\slash`, figString(`back\slash`))
}

func TestFigTemplate(t *testing.T) {
	assert.Equal(t, "plain", figTemplate("plain"))
	assert.Equal(t, "a \\` tick", figTemplate("a ` tick"))
	assert.Equal(t, `costs \${n}`, figTemplate("costs ${n}"))
}
