package dtd

import (
	"bytes"
	"iter"

	"github.com/lestrrat-go/xmltok/internal/orderedmap"
	"github.com/pkg/errors"
)

var (
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
	ErrMissingName          = errors.New("declaration without a name")
)

// Index groups the declarations of an internal subset by the name they
// declare, in document order. Element types and notations may only be
// declared once. For entities the first declaration is binding and later
// ones are ignored. Attribute lists for the same element are merged.
type Index struct {
	elements  *orderedmap.Map[string, Declaration]
	entities  *orderedmap.Map[string, Declaration]
	params    *orderedmap.Map[string, Declaration]
	notations *orderedmap.Map[string, Declaration]
	attlists  *orderedmap.Map[string, []Declaration]
}

// NewIndex builds an Index from decls, usually the result of Parse. The
// Index keeps copies of the declarations.
func NewIndex(decls []Declaration) (*Index, error) {
	idx := &Index{
		elements:  orderedmap.New[string, Declaration](),
		entities:  orderedmap.New[string, Declaration](),
		params:    orderedmap.New[string, Declaration](),
		notations: orderedmap.New[string, Declaration](),
		attlists:  orderedmap.New[string, []Declaration](),
	}
	for _, d := range decls {
		if err := idx.Add(d); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// Add indexes one more declaration. Comments and processing
// instructions are ignored.
func (idx *Index) Add(d Declaration) error {
	if d.Kind == EmitComment || d.Kind == EmitPI {
		return nil
	}

	name := string(d.Name())
	if name == "" {
		return errors.Wrapf(ErrMissingName, "%s declaration at offset %d", d.Kind, d.Offset)
	}
	d = d.Copy()

	switch d.Kind {
	case EmitElement:
		if err := idx.elements.Set(name, d); err != nil {
			return errors.Wrapf(ErrDuplicateDeclaration, "element type '%s' at offset %d", name, d.Offset)
		}
	case EmitNotation:
		if err := idx.notations.Set(name, d); err != nil {
			return errors.Wrapf(ErrDuplicateDeclaration, "notation '%s' at offset %d", name, d.Offset)
		}
	case EmitEntity:
		m := idx.entities
		if d.IsParameterEntity() {
			m = idx.params
		}
		// the first binding is the one that counts
		_ = m.Set(name, d)
	case EmitAttList:
		if !idx.attlists.Update(name, func(v []Declaration) []Declaration { return append(v, d) }) {
			_ = idx.attlists.Set(name, []Declaration{d})
		}
	}
	return nil
}

func (idx *Index) Element(name string) (Declaration, bool) {
	return idx.elements.Get(name)
}

func (idx *Index) Elements() iter.Seq2[string, Declaration] {
	return idx.elements.Range()
}

// Entity returns the declaration of the general entity name
func (idx *Index) Entity(name string) (Declaration, bool) {
	return idx.entities.Get(name)
}

func (idx *Index) Entities() iter.Seq2[string, Declaration] {
	return idx.entities.Range()
}

func (idx *Index) ParameterEntity(name string) (Declaration, bool) {
	return idx.params.Get(name)
}

func (idx *Index) Notation(name string) (Declaration, bool) {
	return idx.notations.Get(name)
}

// AttLists returns the attribute list declarations for element
func (idx *Index) AttLists(element string) []Declaration {
	v, _ := idx.attlists.Get(element)
	return v
}

// EntityValue returns the literal value of an internal general entity.
// External entities (SYSTEM or PUBLIC) have no value here. The value is
// returned as declared; references inside of it are not expanded.
//
// EntityValue has the signature expected by xmltok.UnescapeFunc.
func (idx *Index) EntityValue(name []byte) ([]byte, bool) {
	d, ok := idx.entities.Get(string(name))
	if !ok {
		return nil, false
	}
	body := d.Body()
	rest := bytes.TrimLeft(body[len(d.Name()):], blanks)
	if len(rest) < 2 || (rest[0] != '"' && rest[0] != '\'') {
		return nil, false
	}
	end := bytes.IndexByte(rest[1:], rest[0])
	if end < 0 {
		return nil, false
	}
	return rest[1 : end+1], true
}
