package xmltok

import (
	"github.com/pkg/errors"
)

// XMLDecl holds the pseudo-attributes of an XML declaration. Encoding and
// Standalone are nil when the declaration does not carry them.
type XMLDecl struct {
	Version    []byte
	Encoding   []byte
	Standalone []byte
}

// IsStandalone reports whether standalone="yes" was declared
func (d XMLDecl) IsStandalone() bool {
	return string(d.Standalone) == "yes"
}

// XMLDecl parses the pseudo-attributes of a Decl event.
//
//	[23] XMLDecl ::= '<?xml' VersionInfo EncodingDecl? SDDecl? S? '?>'
func (e Event) XMLDecl() (XMLDecl, error) {
	var decl XMLDecl
	if e.typ != DeclEvent {
		return decl, ErrNotDecl
	}

	// the order is fixed by the grammar
	const (
		wantVersion = iota
		wantEncoding
		wantStandalone
		wantNothing
	)
	want := wantVersion
	for attr, err := range e.Attributes() {
		if err != nil {
			return decl, errors.Wrap(err, "failed to parse XML declaration")
		}

		switch key := string(attr.Key); {
		case key == "version" && want == wantVersion:
			if len(attr.Value) == 0 {
				return decl, ErrVersionRequired
			}
			decl.Version = attr.Value
			want = wantEncoding
		case key == "encoding" && want == wantEncoding:
			decl.Encoding = attr.Value
			want = wantStandalone
		case key == "standalone" && want > wantVersion && want < wantNothing:
			if v := string(attr.Value); v != "yes" && v != "no" {
				return decl, ErrInvalidStandalone
			}
			decl.Standalone = attr.Value
			want = wantNothing
		default:
			return decl, errors.Wrapf(ErrInvalidXMLDecl, "unexpected pseudo-attribute '%s'", key)
		}
	}

	if decl.Version == nil {
		return decl, ErrVersionRequired
	}
	return decl, nil
}
