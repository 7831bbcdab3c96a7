// Package ns resolves namespace prefixes of the element and attribute
// names found in tokenizer events.
package ns

import (
	"bytes"
	"fmt"

	"github.com/lestrrat-go/xmltok"
	"github.com/lestrrat-go/xmltok/internal/stack/nsstack"
	"github.com/pkg/errors"
)

const (
	XMLPrefix      = "xml"
	XMLNamespace   = "http://www.w3.org/XML/1998/namespace"
	XMLNSPrefix    = "xmlns"
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

var (
	ErrNotElement      = errors.New("event is not a start, empty or end tag")
	ErrReservedPrefix  = errors.New("reserved prefix or namespace")
	ErrEmptyPrefixBind = errors.New("prefix cannot be bound to an empty namespace")
)

// ErrUnboundPrefix reports a prefix without a namespace declaration in
// scope
type ErrUnboundPrefix struct {
	Prefix string
}

func (e ErrUnboundPrefix) Error() string {
	return fmt.Sprintf("namespace prefix '%s' is not bound", e.Prefix)
}

// ErrDuplicateAttribute reports two attributes of one element that
// resolve to the same expanded name
type ErrDuplicateAttribute struct {
	Name Name
}

func (e ErrDuplicateAttribute) Error() string {
	return fmt.Sprintf("duplicate attribute %s", e.Name)
}

// Name is an expanded name
type Name struct {
	Space string
	Local string
}

func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

type Attr struct {
	Name  Name
	Value []byte
}

// Element is the resolved form of a start, empty or end tag. End tags
// have no attributes.
type Element struct {
	Name  Name
	Attrs []Attr
}

// Resolver tracks the namespace declarations of the open elements. Feed
// it every Start, Empty and End event in document order.
type Resolver struct {
	bindings nsstack.Stack
}

func NewResolver() *Resolver {
	return &Resolver{bindings: nsstack.New()}
}

// Depth returns the number of element scopes that are open
func (r *Resolver) Depth() int {
	return r.bindings.Depth()
}

// Lookup returns the namespace bound to prefix in the current scope.
// The empty prefix looks up the default namespace.
func (r *Resolver) Lookup(prefix string) (string, bool) {
	if prefix == XMLPrefix {
		return XMLNamespace, true
	}
	return r.bindings.Lookup(prefix)
}

// Resolve processes ev and returns the resolved element. A start tag
// opens a scope that the matching end tag closes; an empty tag opens and
// closes its scope at once.
func (r *Resolver) Resolve(ev xmltok.Event) (Element, error) {
	switch ev.Type() {
	case xmltok.StartEvent:
		return r.open(ev)
	case xmltok.EmptyEvent:
		elem, err := r.open(ev)
		if err != nil {
			return elem, err
		}
		r.bindings.Leave()
		return elem, nil
	case xmltok.EndEvent:
		name, err := r.resolveName(ev.Prefix(), ev.LocalName(), true)
		if err != nil {
			return Element{}, err
		}
		r.bindings.Leave()
		return Element{Name: name}, nil
	default:
		return Element{}, ErrNotElement
	}
}

func (r *Resolver) open(ev xmltok.Event) (elem Element, err error) {
	r.bindings.Enter()
	defer func() {
		if err != nil {
			r.bindings.Leave()
		}
	}()

	var attrs []xmltok.Attribute
	for attr, err := range ev.Attributes() {
		if err != nil {
			return Element{}, err
		}
		if err := r.declare(attr); err != nil {
			return Element{}, err
		}
		attrs = append(attrs, attr)
	}

	name, err := r.resolveName(ev.Prefix(), ev.LocalName(), true)
	if err != nil {
		return Element{}, err
	}
	elem.Name = name

	for _, attr := range attrs {
		var an Name
		prefix, local := splitName(attr.Key)
		switch {
		case prefix == nil && string(local) == XMLNSPrefix:
			an = Name{Space: XMLNSNamespace, Local: XMLNSPrefix}
		case string(prefix) == XMLNSPrefix:
			an = Name{Space: XMLNSNamespace, Local: string(local)}
		default:
			// unprefixed attributes are in no namespace
			an, err = r.resolveName(prefix, local, false)
			if err != nil {
				return Element{}, err
			}
		}
		for _, seen := range elem.Attrs {
			if seen.Name == an {
				return Element{}, ErrDuplicateAttribute{Name: an}
			}
		}
		elem.Attrs = append(elem.Attrs, Attr{Name: an, Value: attr.Value})
	}
	return elem, nil
}

// declare binds the namespace of an xmlns or xmlns:p attribute
func (r *Resolver) declare(attr xmltok.Attribute) error {
	prefix, local := splitName(attr.Key)
	var bound string
	switch {
	case prefix == nil && string(local) == XMLNSPrefix:
		bound = ""
	case string(prefix) == XMLNSPrefix:
		bound = string(local)
	default:
		return nil
	}

	uri, err := attr.Unescaped()
	if err != nil {
		return errors.Wrapf(err, "failed to unescape namespace of '%s'", attr.Key)
	}

	switch {
	case bound == XMLPrefix:
		if string(uri) != XMLNamespace {
			return errors.Wrapf(ErrReservedPrefix, "'%s' bound to '%s'", bound, uri)
		}
		return nil
	case bound == XMLNSPrefix, string(uri) == XMLNamespace, string(uri) == XMLNSNamespace:
		return errors.Wrapf(ErrReservedPrefix, "'%s' bound to '%s'", bound, uri)
	case bound != "" && len(uri) == 0:
		return errors.Wrapf(ErrEmptyPrefixBind, "prefix '%s'", bound)
	}

	if err := r.bindings.Push(bound, string(uri)); err != nil {
		return errors.Wrapf(err, "failed to declare prefix '%s'", bound)
	}
	return nil
}

func (r *Resolver) resolveName(prefix, local []byte, useDefault bool) (Name, error) {
	if prefix == nil {
		if !useDefault {
			return Name{Local: string(local)}, nil
		}
		uri, _ := r.bindings.Lookup("")
		return Name{Space: uri, Local: string(local)}, nil
	}
	uri, ok := r.Lookup(string(prefix))
	if !ok {
		return Name{}, ErrUnboundPrefix{Prefix: string(prefix)}
	}
	return Name{Space: uri, Local: string(local)}, nil
}

func splitName(name []byte) ([]byte, []byte) {
	if i := bytes.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return nil, name
}
