package dtd

// state is the position of the Scanner inside the declaration grammar.
// Every byte of a keyword has its own state so that a keyword split
// across two feeds is matched without looking back.
type state int

const (
	stStart state = iota
	stSawLt
	stSawBang

	// <!E...
	stE
	// <!EL, <!ELE, ... <!ELEMENT
	stEL
	stELE
	stELEM
	stELEME
	stELEMEN
	stELEMENT
	// <!EN, <!ENT, ... <!ENTITY
	stEN
	stENT
	stENTI
	stENTIT
	stENTITY
	// <!A, <!AT, ... <!ATTLIST
	stA
	stAT
	stATT
	stATTL
	stATTLI
	stATTLIS
	stATTLIST
	// <!N, <!NO, ... <!NOTATION
	stN
	stNO
	stNOT
	stNOTA
	stNOTAT
	stNOTATI
	stNOTATIO
	stNOTATION
	// <!-
	stDash

	stElementBody
	stEntityBody
	stAttListBody
	stNotationBody
	stCommentBody
	stPIBody
)

// keyword transitions: state after matching the byte in the key
var keywordTransitions = map[state]struct {
	c    byte
	next state
}{
	stEL:     {'E', stELE},
	stELE:    {'M', stELEM},
	stELEM:   {'E', stELEME},
	stELEME:  {'N', stELEMEN},
	stELEMEN: {'T', stELEMENT},

	stEN:    {'T', stENT},
	stENT:   {'I', stENTI},
	stENTI:  {'T', stENTIT},
	stENTIT: {'Y', stENTITY},

	stA:      {'T', stAT},
	stAT:     {'T', stATT},
	stATT:    {'L', stATTL},
	stATTL:   {'I', stATTLI},
	stATTLI:  {'S', stATTLIS},
	stATTLIS: {'T', stATTLIST},

	stN:       {'O', stNO},
	stNO:      {'T', stNOT},
	stNOT:     {'A', stNOTA},
	stNOTA:    {'T', stNOTAT},
	stNOTAT:   {'I', stNOTATI},
	stNOTATI:  {'O', stNOTATIO},
	stNOTATIO: {'N', stNOTATION},
}

// body states entered after the whitespace following a complete keyword
var keywordBodies = map[state]state{
	stELEMENT:  stElementBody,
	stENTITY:   stEntityBody,
	stATTLIST:  stAttListBody,
	stNOTATION: stNotationBody,
}

func (s state) String() string {
	switch s {
	case stStart:
		return "Start"
	case stSawLt:
		return "SawLt"
	case stSawBang:
		return "SawBang"
	case stDash:
		return "SawDash"
	case stElementBody:
		return "ElementBody"
	case stEntityBody:
		return "EntityBody"
	case stAttListBody:
		return "AttListBody"
	case stNotationBody:
		return "NotationBody"
	case stCommentBody:
		return "CommentBody"
	case stPIBody:
		return "PIBody"
	}
	if s >= stE && s <= stNOTATION {
		return "Keyword"
	}
	return "Unknown"
}
