package xmltok_test

import (
	"testing"

	"github.com/lestrrat-go/xmltok"
	"github.com/stretchr/testify/require"
)

func firstEvent(t *testing.T, input string, typ xmltok.EventType) xmltok.Event {
	t.Helper()
	r := xmltok.NewBytesReader([]byte(input))
	for ev, err := range r.All() {
		require.NoError(t, err)
		if ev.Type() == typ {
			return ev
		}
	}
	t.Fatalf("no %s event in %q", typ, input)
	return xmltok.Event{}
}

func TestEventNames(t *testing.T) {
	ev := firstEvent(t, `<p:item  a="1"/>`, xmltok.EmptyEvent)
	require.Equal(t, "p:item", string(ev.Name()))
	require.Equal(t, "item", string(ev.LocalName()))
	require.Equal(t, "p", string(ev.Prefix()))
	require.Equal(t, `  a="1"`, string(ev.RawAttributes()))

	ev = firstEvent(t, `<item/>`, xmltok.EmptyEvent)
	require.Nil(t, ev.Prefix())

	ev = firstEvent(t, `<?target   some data?>`, xmltok.PIEvent)
	require.Equal(t, "target", string(ev.Name()))
	require.Equal(t, "some data", string(ev.Target()))

	ev = firstEvent(t, `<!-- c -->`, xmltok.CommentEvent)
	require.Nil(t, ev.Name())
	require.Nil(t, ev.RawAttributes())
	require.Equal(t, `Comment(" c ")`, ev.String())
}

func TestEventCopy(t *testing.T) {
	data := []byte(`<a>text</a>`)
	r := xmltok.NewBytesReader(data)
	_, err := r.Next()
	require.NoError(t, err)
	ev, err := r.Next()
	require.NoError(t, err)

	cp := ev.Copy()
	data[3] = 'T'
	require.Equal(t, "Text", string(ev.Bytes()))
	require.Equal(t, "text", string(cp.Bytes()))
}

func TestEventUnescaped(t *testing.T) {
	ev := firstEvent(t, `<a>x &lt; y &#x26; &#65;</a>`, xmltok.TextEvent)
	b, err := ev.Unescaped()
	require.NoError(t, err)
	require.Equal(t, "x < y & A", string(b))

	ev = firstEvent(t, `<a><![CDATA[&lt;]]></a>`, xmltok.CDataEvent)
	b, err = ev.Unescaped()
	require.NoError(t, err)
	require.Equal(t, "&lt;", string(b), "CDATA is never unescaped")
}

func TestEventInternalSubset(t *testing.T) {
	ev := firstEvent(t, `<!DOCTYPE x SYSTEM "a[b]" [<!ELEMENT x ANY>]><x/>`, xmltok.DocTypeEvent)
	subset, err := ev.InternalSubset()
	require.NoError(t, err)
	require.Equal(t, `<!ELEMENT x ANY>`, string(subset))

	ev = firstEvent(t, `<!DOCTYPE html><html/>`, xmltok.DocTypeEvent)
	subset, err = ev.InternalSubset()
	require.NoError(t, err)
	require.Nil(t, subset)

	ev = firstEvent(t, `<a/>`, xmltok.EmptyEvent)
	_, err = ev.InternalSubset()
	require.ErrorIs(t, err, xmltok.ErrNotDocType)
}

func TestAttributes(t *testing.T) {
	ev := firstEvent(t, `<a x="1" y = 'two' z="&amp;"/>`, xmltok.EmptyEvent)

	var keys, values []string
	for attr, err := range ev.Attributes() {
		require.NoError(t, err)
		keys = append(keys, string(attr.Key))
		values = append(values, string(attr.Value))
	}
	require.Equal(t, []string{"x", "y", "z"}, keys)
	require.Equal(t, []string{"1", "two", "&amp;"}, values)

	v, ok, err := ev.Attribute("y")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "two", string(v))

	_, ok, err = ev.Attribute("missing")
	require.NoError(t, err)
	require.False(t, ok)

	testcases := []struct {
		Input string
		Check func(*testing.T, error)
	}{
		{Input: `<a x="1" x="2"/>`, Check: func(t *testing.T, err error) {
			require.Equal(t, xmltok.ErrDuplicateAttribute{Name: "x"}, err)
		}},
		{Input: `<a x/>`, Check: func(t *testing.T, err error) {
			require.ErrorAs(t, err, &xmltok.ErrMalformedAttribute{})
		}},
		{Input: `<a x=1/>`, Check: func(t *testing.T, err error) {
			require.ErrorAs(t, err, &xmltok.ErrMalformedAttribute{})
		}},
		{Input: `<a x="1"y="2"/>`, Check: func(t *testing.T, err error) {
			require.ErrorAs(t, err, &xmltok.ErrMalformedAttribute{})
		}},
		{Input: `<a ="1"/>`, Check: func(t *testing.T, err error) {
			require.ErrorAs(t, err, &xmltok.ErrMalformedAttribute{})
		}},
	}
	for _, tc := range testcases {
		t.Run(tc.Input, func(t *testing.T) {
			ev := firstEvent(t, tc.Input, xmltok.EmptyEvent)
			var err error
			for _, e := range ev.Attributes() {
				if e != nil {
					err = e
				}
			}
			require.Error(t, err)
			tc.Check(t, err)
		})
	}
}

func TestXMLDecl(t *testing.T) {
	ev := firstEvent(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><a/>`, xmltok.DeclEvent)
	require.Equal(t, "xml", string(ev.Name()))
	decl, err := ev.XMLDecl()
	require.NoError(t, err)
	require.Equal(t, "1.0", string(decl.Version))
	require.Equal(t, "UTF-8", string(decl.Encoding))
	require.True(t, decl.IsStandalone())

	ev = firstEvent(t, `<?xml version='1.1'?><a/>`, xmltok.DeclEvent)
	decl, err = ev.XMLDecl()
	require.NoError(t, err)
	require.Nil(t, decl.Encoding)
	require.False(t, decl.IsStandalone())

	testcases := []struct {
		Input string
		Err   error
	}{
		{Input: `<?xml encoding="UTF-8"?>`, Err: xmltok.ErrInvalidXMLDecl},
		{Input: `<?xml ?>`, Err: xmltok.ErrVersionRequired},
		{Input: `<?xml version=""?>`, Err: xmltok.ErrVersionRequired},
		{Input: `<?xml version="1.0" standalone="maybe"?>`, Err: xmltok.ErrInvalidStandalone},
		{Input: `<?xml version="1.0" standalone="no" encoding="UTF-8"?>`, Err: xmltok.ErrInvalidXMLDecl},
	}
	for _, tc := range testcases {
		t.Run(tc.Input, func(t *testing.T) {
			ev := firstEvent(t, tc.Input, xmltok.DeclEvent)
			_, err := ev.XMLDecl()
			require.ErrorIs(t, err, tc.Err)
		})
	}

	ev = firstEvent(t, `<?pi?>`, xmltok.PIEvent)
	_, err = ev.XMLDecl()
	require.ErrorIs(t, err, xmltok.ErrNotDecl)
}
