package xmlevents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NsReader_ResolvesPrefixedAndDefaultNamespaces(t *testing.T) {
	xml := `<a xmlns:p="u"><p:b/></a>`
	nr := NewNsReader(NewSliceInput([]byte(xml)))

	ev, res, err := nr.ReadResolvedEvent()
	require.NoError(t, err)
	require.Equal(t, StartTag, ev.Kind)
	assert.Equal(t, NSUnbound, res.Kind)

	ev, res, err = nr.ReadResolvedEvent()
	require.NoError(t, err)
	require.Equal(t, EmptyTag, ev.Kind)
	require.Equal(t, NSBound, res.Kind)
	assert.Equal(t, "u", string(res.URI))
	assert.Equal(t, "b", string(res.Local))

	ev, res, err = nr.ReadResolvedEvent()
	require.NoError(t, err)
	require.Equal(t, EndTag, ev.Kind)
	assert.Equal(t, NSUnbound, res.Kind)

	ev, res, err = nr.ReadResolvedEvent()
	require.NoError(t, err)
	assert.Equal(t, Eof, ev.Kind)
	assert.Equal(t, NSUnbound, res.Kind)
}

func Test_NsReader_NamespaceScopeEndsAfterMatchingEnd(t *testing.T) {
	xml := `<a xmlns:p="u"><p:inner/></a><p:outer/>`
	nr := NewNsReader(NewSliceInput([]byte(xml)))

	_, _, err := nr.ReadResolvedEvent() // Start a
	require.NoError(t, err)

	_, res, err := nr.ReadResolvedEvent() // Empty p:inner, still in scope
	require.NoError(t, err)
	require.Equal(t, NSBound, res.Kind)
	assert.Equal(t, "u", string(res.URI))

	_, res, err = nr.ReadResolvedEvent() // End a
	require.NoError(t, err)
	assert.Equal(t, NSUnbound, res.Kind)

	// The pop for </a>'s scope is deferred to this next call, so p:outer
	// (declared nowhere) now resolves as Unknown.
	_, res, err = nr.ReadResolvedEvent()
	require.NoError(t, err)
	assert.Equal(t, NSUnknown, res.Kind)
	assert.Equal(t, "p", string(res.Prefix))
}

func Test_NsReader_UnprefixedAttributeNeverUsesDefaultNamespace(t *testing.T) {
	xml := `<a xmlns="d" b="v"/>`
	nr := NewNsReader(NewSliceInput([]byte(xml)))

	ev, _, err := nr.ReadResolvedEvent()
	require.NoError(t, err)
	require.Equal(t, EmptyTag, ev.Kind)

	res := nr.AttributeNamespace(QName("b"))
	assert.Equal(t, NSUnbound, res.Kind)

	res = nr.EventNamespace(QName("a"))
	assert.Equal(t, NSBound, res.Kind)
	assert.Equal(t, "d", string(res.URI))
}

func Test_NsReader_ExplicitUnbindShadowsOuterDefault(t *testing.T) {
	xml := `<a xmlns="outer"><b xmlns=""/></a>`
	nr := NewNsReader(NewSliceInput([]byte(xml)))

	_, res, err := nr.ReadResolvedEvent() // Start a
	require.NoError(t, err)
	require.Equal(t, NSBound, res.Kind)
	assert.Equal(t, "outer", string(res.URI))

	_, res, err = nr.ReadResolvedEvent() // Empty b, xmlns=""
	require.NoError(t, err)
	assert.Equal(t, NSUnbound, res.Kind)
}
