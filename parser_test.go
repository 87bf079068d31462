package xmlevents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedAll drives p to a non-NeedData outcome by feeding buf byte by
// byte, simulating the worst-case chunk boundary at every position.
func feedAll(t *testing.T, p *Parser, buf []byte) feedResult {
	t.Helper()
	for n := 1; n <= len(buf); n++ {
		res := p.Feed(buf[:n], n == len(buf))
		if res.outcome != outcomeNeedData {
			return res
		}
	}
	t.Fatalf("never reached a terminal outcome for %q", buf)
	return feedResult{}
}

func Test_Parser_Text(t *testing.T) {
	p := NewParser()
	res := feedAll(t, p, []byte("hello<a>"))
	assert.Equal(t, outcomeText, res.outcome)
	assert.Equal(t, 5, res.n)
}

func Test_Parser_TrailingTextAtEOF(t *testing.T) {
	p := NewParser()
	res := p.Feed([]byte("no markup here"), true)
	assert.Equal(t, outcomeText, res.outcome)
	assert.Equal(t, 14, res.n)
}

func Test_Parser_StartAndEmptyTag(t *testing.T) {
	p := NewParser()
	res := feedAll(t, p, []byte("<a b=\"c\">"))
	assert.Equal(t, outcomeStartTag, res.outcome)
	assert.Equal(t, 9, res.n)

	p.beginEvent()
	res = feedAll(t, p, []byte("<a b=\"c\"/>"))
	assert.Equal(t, outcomeEmptyTag, res.outcome)
	assert.Equal(t, 10, res.n)
}

func Test_Parser_QuotedGtInsideAttribute(t *testing.T) {
	p := NewParser()
	res := feedAll(t, p, []byte(`<a b="1>2">`))
	assert.Equal(t, outcomeStartTag, res.outcome)
	assert.Equal(t, len(`<a b="1>2">`), res.n)
}

func Test_Parser_EndTag(t *testing.T) {
	p := NewParser()
	res := feedAll(t, p, []byte("</a>"))
	assert.Equal(t, outcomeEndTag, res.outcome)
	assert.Equal(t, 4, res.n)
}

func Test_Parser_Comment(t *testing.T) {
	p := NewParser()
	res := feedAll(t, p, []byte("<!--x--y-->"))
	assert.Equal(t, outcomeComment, res.outcome)
	assert.Equal(t, 11, res.n)
}

func Test_Parser_Comment_CheckComments(t *testing.T) {
	p := NewParser()
	p.CheckComments = true
	res := feedAll(t, p, []byte("<!-- -- -->"))
	require.Equal(t, outcomeComment, res.outcome)
	assert.GreaterOrEqual(t, p.CommentHyphenAt(), int64(0))

	p = NewParser()
	p.CheckComments = true
	res = feedAll(t, p, []byte("<!--clean-->"))
	require.Equal(t, outcomeComment, res.outcome)
	assert.Equal(t, int64(-1), p.CommentHyphenAt())
}

func Test_Parser_CData(t *testing.T) {
	p := NewParser()
	res := feedAll(t, p, []byte("<![CDATA[<&>]]>"))
	assert.Equal(t, outcomeCData, res.outcome)
	assert.Equal(t, len("<![CDATA[<&>]]>"), res.n)
}

func Test_Parser_Doctype_WithInternalSubset(t *testing.T) {
	p := NewParser()
	res := feedAll(t, p, []byte(`<!DOCTYPE a [ <!ELEMENT a (#PCDATA)> ]>`))
	assert.Equal(t, outcomeDoctype, res.outcome)
	assert.Equal(t, len(`<!DOCTYPE a [ <!ELEMENT a (#PCDATA)> ]>`), res.n)
}

func Test_Parser_PIOrDecl(t *testing.T) {
	p := NewParser()
	res := feedAll(t, p, []byte(`<?xml version="1.0"?>`))
	assert.Equal(t, outcomePI, res.outcome)
	assert.Equal(t, len(`<?xml version="1.0"?>`), res.n)
}

func Test_Parser_RestartsAtEveryChunkBoundary(t *testing.T) {
	inputs := []string{
		"<a><b/><c>text</c></a>",
		"<!--comment--><a/>",
		"<![CDATA[data]]>",
		"<a x=\"y\"></a>",
	}
	for _, in := range inputs {
		p := NewParser()
		res := feedAll(t, p, []byte(in))
		assert.NotEqual(t, outcomeNeedData, res.outcome, "input %q", in)
	}
}

func Test_DetectEncodingMarker(t *testing.T) {
	t.Run("UTF-8 BOM", func(t *testing.T) {
		o, n, ok := detectEncodingMarker([]byte{0xEF, 0xBB, 0xBF, '<'})
		require.True(t, ok)
		assert.Equal(t, outcomeEncodingUTF8, o)
		assert.Equal(t, 3, n)
	})
	t.Run("UTF-16LE BOM", func(t *testing.T) {
		o, n, ok := detectEncodingMarker([]byte{0xFF, 0xFE, 0x3C, 0x00})
		require.True(t, ok)
		assert.Equal(t, outcomeEncodingUTF16LE, o)
		assert.Equal(t, 2, n)
	})
	t.Run("raw UTF-16BE pattern without BOM consumes nothing", func(t *testing.T) {
		o, n, ok := detectEncodingMarker([]byte{0x00, '<', 0x00, '?'})
		require.True(t, ok)
		assert.Equal(t, outcomeEncodingUTF16BE, o)
		assert.Equal(t, 0, n)
	})
	t.Run("no marker", func(t *testing.T) {
		_, _, ok := detectEncodingMarker([]byte("<a/>"))
		assert.False(t, ok)
	})
}
