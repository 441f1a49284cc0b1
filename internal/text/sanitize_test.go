package text

import (
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func Test_StripTags_RemovesMarkup(t *testing.T) {
	input := `<p><strong>Обязанности:</strong></p><ul><li>писать код на <a href="https://go.dev">Go</a></li></ul>`

	result := StripTags(input)

	assert.Equal(t, "Обязанности:писать код на Go", result)
	assert.False(t, strings.ContainsAny(result, "<>"))
}

func Test_StripTags_WithoutTags_ShouldReturnInput(t *testing.T) {
	inputs := []string{"", "plain text", "2 > 1 and 1 < 2", "a<b"}
	for _, input := range inputs {
		assert.Equal(t, input, StripTags(input))
	}
}

func Test_StripTags_UnmatchedBrackets_ShouldStayLiteral(t *testing.T) {
	assert.Equal(t, "a > b c", StripTags("a > b <i>c</i>"))
	assert.Equal(t, "x <= y", StripTags("x <= y"))
	assert.Equal(t, "a>", StripTags("a<<b>>"))
	assert.Equal(t, "<\n>", StripTags("<\n<br>>"))
}

func Test_StripTags_IsIdempotent(t *testing.T) {
	inputs := []string{
		"<div class=\"a\">text</div>",
		"a<<b>>",
		"<a<b>c>",
		"<\n<br>>",
		"no tags at all",
		"<<<>>>",
	}
	for _, input := range inputs {
		once := StripTags(input)
		assert.Equal(t, once, StripTags(once), "input: %q", input)
	}
}
