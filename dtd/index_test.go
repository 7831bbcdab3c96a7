package dtd_test

import (
	"testing"

	"github.com/lestrrat-go/xmltok"
	"github.com/lestrrat-go/xmltok/dtd"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	decls, err := dtd.Parse([]byte(subset))
	require.NoError(t, err)

	idx, err := dtd.NewIndex(decls)
	require.NoError(t, err)

	d, ok := idx.Element("doc")
	require.True(t, ok)
	require.Equal(t, `<!ELEMENT doc (#PCDATA | a)*>`, string(d.Bytes))

	_, ok = idx.Entity("pe")
	require.False(t, ok, "parameter entities are kept apart")
	_, ok = idx.ParameterEntity("pe")
	require.True(t, ok)

	_, ok = idx.Notation("gif")
	require.True(t, ok)
	require.Len(t, idx.AttLists("a"), 1)
	require.Empty(t, idx.AttLists("doc"))

	var names []string
	for name := range idx.Entities() {
		names = append(names, name)
	}
	require.Equal(t, []string{"copy", "tricky"}, names)

	v, ok := idx.EntityValue([]byte("tricky"))
	require.True(t, ok)
	require.Equal(t, "one's > two", string(v))
}

func TestIndexDuplicates(t *testing.T) {
	decls, err := dtd.Parse([]byte(`<!ELEMENT a EMPTY><!ELEMENT a ANY>`))
	require.NoError(t, err)
	_, err = dtd.NewIndex(decls)
	require.ErrorIs(t, err, dtd.ErrDuplicateDeclaration)

	decls, err = dtd.Parse([]byte(`<!ENTITY e "first"><!ENTITY e "second"><!ATTLIST a x CDATA #IMPLIED><!ATTLIST a y CDATA #IMPLIED>`))
	require.NoError(t, err)
	idx, err := dtd.NewIndex(decls)
	require.NoError(t, err)
	v, ok := idx.EntityValue([]byte("e"))
	require.True(t, ok)
	require.Equal(t, "first", string(v))
	require.Len(t, idx.AttLists("a"), 2)

	decls, err = dtd.Parse([]byte(`<!ELEMENT >`))
	require.NoError(t, err)
	_, err = dtd.NewIndex(decls)
	require.ErrorIs(t, err, dtd.ErrMissingName)
}

func TestIndexResolvesText(t *testing.T) {
	const doc = `<!DOCTYPE r [<!ENTITY who "world"><!ENTITY ext SYSTEM "ext.xml">]><r>hello &who;</r>`

	r := xmltok.NewBytesReader([]byte(doc))
	ev, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, xmltok.DocTypeEvent, ev.Type())

	subset, err := ev.InternalSubset()
	require.NoError(t, err)
	decls, err := dtd.Parse(subset)
	require.NoError(t, err)
	idx, err := dtd.NewIndex(decls)
	require.NoError(t, err)

	_, ok := idx.EntityValue([]byte("ext"))
	require.False(t, ok, "external entities are not resolved")

	_, err = r.Next()
	require.NoError(t, err)
	ev, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, xmltok.TextEvent, ev.Type())

	text, err := xmltok.UnescapeFunc(ev.Bytes(), idx.EntityValue)
	require.NoError(t, err)
	require.Equal(t, "hello world", string(text))
}
