package dtd

import "bytes"

const blanks = " \t\r\n"

// Declaration is one markup declaration of an internal subset
type Declaration struct {
	// Kind is one of the Emit kinds
	Kind ResultKind
	// Offset is the absolute offset of the declaration's '<'
	Offset int64
	// Bytes is the complete declaration, from '<' to '>'
	Bytes []byte
}

// Body returns the bytes between the keyword (or "<?") and the closing
// '>' with surrounding whitespace removed. For comments it returns the
// text between "<!--" and "-->" as is.
func (d Declaration) Body() []byte {
	b := d.Bytes
	switch d.Kind {
	case EmitComment:
		if len(b) < 7 {
			return nil
		}
		return b[4 : len(b)-3]
	case EmitPI:
		if len(b) < 4 {
			return nil
		}
		return bytes.Trim(b[2:len(b)-2], blanks)
	case EmitElement, EmitEntity, EmitAttList, EmitNotation:
		if len(b) < 3 {
			return nil
		}
		b = b[2 : len(b)-1]
		// keyword
		if i := bytes.IndexAny(b, blanks); i >= 0 {
			b = b[i:]
		}
		return bytes.Trim(b, blanks)
	}
	return nil
}

// IsParameterEntity reports whether d declares a parameter entity
// (<!ENTITY % name ...>)
func (d Declaration) IsParameterEntity() bool {
	if d.Kind != EmitEntity {
		return false
	}
	b := d.Body()
	return len(b) > 1 && b[0] == '%' && isBlank(b[1])
}

// Name returns the name being declared: the element name, the entity
// name, the element an attribute list belongs to, the notation name or
// the PI target. Comments have no name.
func (d Declaration) Name() []byte {
	if d.Kind == EmitComment {
		return nil
	}
	b := d.Body()
	if d.IsParameterEntity() {
		b = bytes.TrimLeft(b[1:], blanks)
	}
	if i := bytes.IndexAny(b, blanks); i >= 0 {
		return b[:i]
	}
	return b
}

func (d Declaration) String() string {
	return d.Kind.String() + " " + string(d.Bytes)
}

// Copy returns a Declaration that owns its bytes
func (d Declaration) Copy() Declaration {
	d.Bytes = bytes.Clone(d.Bytes)
	return d
}
