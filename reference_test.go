package xmltok_test

import (
	"testing"

	"github.com/lestrrat-go/xmltok"
	"github.com/stretchr/testify/require"
)

func TestUnescape(t *testing.T) {
	testcases := []struct {
		Input string
		Want  string
	}{
		{Input: `plain`, Want: `plain`},
		{Input: `&lt;&gt;&amp;&apos;&quot;`, Want: `<>&'"`},
		{Input: `&#65;&#x42;&#x43;`, Want: `ABC`},
		{Input: `&#x1F600; smile`, Want: "\U0001F600 smile"},
		{Input: `a&amp;b`, Want: `a&b`},
	}
	for _, tc := range testcases {
		t.Run(tc.Input, func(t *testing.T) {
			got, err := xmltok.Unescape([]byte(tc.Input))
			require.NoError(t, err)
			require.Equal(t, tc.Want, string(got))
		})
	}
}

func TestUnescapeErrors(t *testing.T) {
	_, err := xmltok.Unescape([]byte(`a &amp b`))
	require.Equal(t, xmltok.ErrUnterminatedEntity{Offset: 2}, err)

	_, err = xmltok.Unescape([]byte(`&nbsp;`))
	require.Equal(t, xmltok.ErrUnrecognizedEntity{Name: "nbsp"}, err)

	_, err = xmltok.Unescape([]byte(`&#0;`))
	require.ErrorIs(t, err, xmltok.ErrEntityWithNull)

	for _, ref := range []string{`&#;`, `&#x;`, `&#xZZ;`, `&#1a;`, `&#xD800;`, `&#x110000;`, `&#1;`} {
		_, err = xmltok.Unescape([]byte(ref))
		require.ErrorAs(t, err, &xmltok.ErrInvalidCodepoint{}, "%s is not a valid character", ref)
	}
}

func TestUnescapeFunc(t *testing.T) {
	resolve := func(name []byte) ([]byte, bool) {
		if string(name) == "copy" {
			return []byte("©"), true
		}
		return nil, false
	}
	got, err := xmltok.UnescapeFunc([]byte(`&copy; 2024 &amp; more`), resolve)
	require.NoError(t, err)
	require.Equal(t, "© 2024 & more", string(got))

	_, err = xmltok.UnescapeFunc([]byte(`&reg;`), resolve)
	require.ErrorAs(t, err, &xmltok.ErrUnrecognizedEntity{})
}

func TestEscape(t *testing.T) {
	require.Equal(t, `a &lt;b&gt; &amp; &apos;c&apos; &quot;d&quot;`, string(xmltok.Escape([]byte(`a <b> & 'c' "d"`))))

	in := []byte(`nothing to do`)
	out := xmltok.Escape(in)
	require.Equal(t, &in[0], &out[0], "input without special characters is returned as is")

	unescaped, err := xmltok.Unescape(xmltok.Escape([]byte(`<x a="1">&</x>`)))
	require.NoError(t, err)
	require.Equal(t, `<x a="1">&</x>`, string(unescaped))
}
