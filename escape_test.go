package xmlevents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Escape(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt; &apos;d&apos; &quot;e&quot;", Escape(`a & b <c> 'd' "e"`))
	assert.Equal(t, "nothing to escape", Escape("nothing to escape"))
}

func Test_Unescape(t *testing.T) {
	t.Run("should expand the five predefined entities and numeric references", func(t *testing.T) {
		out, err := Unescape("&lt;&gt;&amp;&apos;&quot;&#65;&#x42;")
		require.NoError(t, err)
		assert.Equal(t, `<>&'"AB`, out)
	})

	t.Run("should error on an unknown named entity with no resolver", func(t *testing.T) {
		_, err := Unescape("&nbsp;")
		assert.Error(t, err)
	})

	t.Run("should consult the resolver for other named entities", func(t *testing.T) {
		out, err := UnescapeWith("&nbsp;", func(name string) (string, bool) {
			if name == "nbsp" {
				return " ", true
			}
			return "", false
		})
		require.NoError(t, err)
		assert.Equal(t, " ", out)
	})

	t.Run("should error on an unterminated entity reference", func(t *testing.T) {
		_, err := Unescape("a & b")
		assert.Error(t, err)
	})

	t.Run("should round-trip through escape and unescape", func(t *testing.T) {
		for _, s := range []string{"plain", "a & b", "<tag>", "it's \"quoted\"", "mixed &<>'\" text"} {
			out, err := Unescape(Escape(s))
			require.NoError(t, err)
			assert.Equal(t, s, out)
		}
	})
}
