package xmlevents

// Attribute is a single key/value pair borrowed from a tag body. Value
// does not include its surrounding quotes and is not unescaped —
// entities remain as raw bytes (&lt; stays &lt;); call Unescape to
// expand them.
type Attribute struct {
	Key   []byte
	Value []byte
}

// Attributes iterates the key/value pairs of a start/empty tag body
// using a three-state micro-machine (outside / in-single-quote /
// in-double-quote) so '>' and whitespace inside quoted values are never
// mistaken for delimiters. It follows the bufio.Scanner shape: call Scan
// in a loop, read Attribute() while it returns true, then check Err().
type Attributes struct {
	body       []byte
	pos        int
	withChecks bool
	seen       map[string]int
	current    Attribute
	err        error
}

// NewAttributes returns an iterator over body, the bytes of a start or
// empty tag after its name.
func NewAttributes(body []byte) *Attributes {
	return &Attributes{body: body}
}

// WithChecks enables duplicate-attribute detection; the first occurrence
// of a name is remembered so a later repeat can report its offset.
func (a *Attributes) WithChecks(v bool) *Attributes {
	a.withChecks = v
	if v && a.seen == nil {
		a.seen = make(map[string]int)
	}
	return a
}

// Attribute returns the pair most recently produced by a successful Scan.
func (a *Attributes) Attribute() Attribute { return a.current }

// Err returns the error, if any, associated with the end of iteration or
// (for DuplicatedAttr only, since that case does not corrupt the scan)
// the most recently scanned attribute.
func (a *Attributes) Err() error { return a.err }

func isAttrSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Scan advances to the next attribute, returning false when iteration is
// done — either because the body is exhausted or because a malformed
// attribute made further progress unsafe. Check Err afterward.
func (a *Attributes) Scan() bool {
	i := a.pos
	for i < len(a.body) && isAttrSpace(a.body[i]) {
		i++
	}
	if i >= len(a.body) {
		a.pos = i
		return false
	}

	nameStart := i
	for i < len(a.body) && !isAttrSpace(a.body[i]) && a.body[i] != '=' {
		i++
	}
	key := a.body[nameStart:i]

	for i < len(a.body) && isAttrSpace(a.body[i]) {
		i++
	}
	if i >= len(a.body) || a.body[i] != '=' {
		a.err = &AttrError{offset: int64(nameStart), Kind: ExpectedEq, Key: string(key)}
		a.pos = i
		return false
	}
	i++ // skip '='

	for i < len(a.body) && isAttrSpace(a.body[i]) {
		i++
	}
	if i >= len(a.body) || (a.body[i] != '\'' && a.body[i] != '"') {
		a.err = &AttrError{offset: int64(i), Kind: UnquotedValue, Key: string(key)}
		a.pos = len(a.body)
		return false
	}
	quote := a.body[i]
	valueStart := i + 1
	j := valueStart
	for j < len(a.body) && a.body[j] != quote {
		j++
	}
	if j >= len(a.body) {
		a.err = &AttrError{offset: int64(valueStart), Kind: UnclosedValue, Key: string(key)}
		a.pos = len(a.body)
		return false
	}

	a.pos = j + 1
	a.current = Attribute{Key: key, Value: a.body[valueStart:j]}

	if a.withChecks {
		ks := string(key)
		if prev, dup := a.seen[ks]; dup {
			a.err = &AttrError{offset: int64(nameStart), Kind: DuplicatedAttr, Key: ks, PrevKey: int64(prev)}
		} else {
			a.seen[ks] = nameStart
			a.err = nil
		}
	} else {
		a.err = nil
	}
	return true
}

// TryGetAttribute scans body looking for an attribute named name,
// returning ok=false if it is not present. err is non-nil if a malformed
// attribute was encountered before name could be found.
func TryGetAttribute(body []byte, name string) (attr Attribute, ok bool, err error) {
	it := NewAttributes(body)
	for it.Scan() {
		if string(it.Attribute().Key) == name {
			return it.Attribute(), true, nil
		}
	}
	return Attribute{}, false, it.Err()
}
