package xmlevents

import "bytes"

// NamespaceEntry is one prefix-to-URI binding on the namespace stack
// (§3). Prefix bytes occupy buffer[start : start+prefixLen]; URI bytes
// occupy buffer[start+prefixLen : start+prefixLen+valueLen]. prefixLen
// == 0 means the default namespace; valueLen == 0 means an explicit
// unbind (xmlns[:p]="").
type NamespaceEntry struct {
	start     int
	prefixLen int
	valueLen  int
	level     int
}

// NSKind discriminates the outcome of a namespace resolution.
type NSKind uint8

const (
	// NSBound: the prefix (or default namespace) resolved to a URI.
	NSBound NSKind = iota + 1
	// NSUnbound: an unprefixed attribute name, or an explicit xmlns
	// unbind, or no default namespace is in scope.
	NSUnbound
	// NSUnknown: a prefix with no binding anywhere on the stack.
	NSUnknown
)

// NSResult is the outcome of resolving a QName against the current
// binding stack.
type NSResult struct {
	Kind   NSKind
	URI    Namespace // set iff Kind == NSBound
	Prefix Prefix    // set iff Kind == NSUnknown
	Local  LocalName
}

// nsStack is the binding stack itself: a flat buffer of concatenated
// prefix+URI bytes plus a parallel vector of entries, scoped by a depth
// counter rather than one map per element.
type nsStack struct {
	buffer  []byte
	entries []NamespaceEntry
	level   int
}

// push walks the attributes of a Start or Empty event, recording a new
// NamespaceEntry at the current (just-entered) depth for every xmlns /
// xmlns:* attribute.
func (ns *nsStack) push(ev Event) {
	ns.level++
	it := ev.Attributes()
	for it.Scan() {
		attr := it.Attribute()
		prefix, ok := isNamespaceDecl(attr.Key)
		if !ok {
			continue
		}
		start := len(ns.buffer)
		ns.buffer = append(ns.buffer, prefix...)
		ns.buffer = append(ns.buffer, attr.Value...)
		ns.entries = append(ns.entries, NamespaceEntry{
			start:     start,
			prefixLen: len(prefix),
			valueLen:  len(attr.Value),
			level:     ns.level,
		})
	}
}

// pop decrements the depth counter and truncates both the entry vector
// and the byte buffer to the last entry whose level does not exceed the
// new depth.
func (ns *nsStack) pop() {
	if ns.level == 0 {
		return
	}
	ns.level--
	i := len(ns.entries)
	for i > 0 && ns.entries[i-1].level > ns.level {
		i--
	}
	if i < len(ns.entries) {
		ns.buffer = ns.buffer[:ns.entries[i].start]
	}
	ns.entries = ns.entries[:i]
}

// resolve splits qname at its first ':' and searches the stack from the
// top down, per §4.5.
func (ns *nsStack) resolve(qname QName, useDefault bool) NSResult {
	prefix, local := qname.Split()

	if len(prefix) > 0 {
		for i := len(ns.entries) - 1; i >= 0; i-- {
			e := ns.entries[i]
			entryPrefix := ns.buffer[e.start : e.start+e.prefixLen]
			if !bytes.Equal(entryPrefix, prefix) {
				continue
			}
			if e.valueLen == 0 {
				return NSResult{Kind: NSUnbound, Local: local}
			}
			uri := ns.buffer[e.start+e.prefixLen : e.start+e.prefixLen+e.valueLen]
			return NSResult{Kind: NSBound, URI: Namespace(uri), Local: local}
		}
		return NSResult{Kind: NSUnknown, Prefix: prefix, Local: local}
	}

	if !useDefault {
		return NSResult{Kind: NSUnbound, Local: local}
	}
	for i := len(ns.entries) - 1; i >= 0; i-- {
		e := ns.entries[i]
		if e.prefixLen != 0 {
			continue
		}
		if e.valueLen == 0 {
			return NSResult{Kind: NSUnbound, Local: local}
		}
		uri := ns.buffer[e.start : e.start+e.valueLen]
		return NSResult{Kind: NSBound, URI: Namespace(uri), Local: local}
	}
	return NSResult{Kind: NSUnbound, Local: local}
}

// prefixes returns the prefix of every binding currently in scope, most
// recently declared first, including shadowed ones.
func (ns *nsStack) prefixes() []Prefix {
	out := make([]Prefix, 0, len(ns.entries))
	for i := len(ns.entries) - 1; i >= 0; i-- {
		e := ns.entries[i]
		out = append(out, Prefix(ns.buffer[e.start:e.start+e.prefixLen]))
	}
	return out
}

// NsReader wraps Reader with namespace resolution (§4.5): a stack of
// prefix-to-URI bindings scoped by element depth, with the pop for a
// closed scope deferred to the entry of the following ReadResolvedEvent
// call so callers can still resolve names on the End event itself.
type NsReader struct {
	*Reader
	ns     nsStack
	popDue bool
}

// NewNsReader returns an NsReader over input using DefaultConfig.
func NewNsReader(input Input) *NsReader {
	return NewNsReaderWithConfig(input, DefaultConfig())
}

// NewNsReaderWithConfig returns an NsReader over input using cfg.
func NewNsReaderWithConfig(input Input, cfg Config) *NsReader {
	return &NsReader{Reader: NewReaderWithConfig(input, cfg)}
}

// ReadResolvedEvent composes ReadEvent with namespace resolution for
// StartTag, EmptyTag and EndTag; every other event kind is returned
// alongside NSUnbound.
func (nr *NsReader) ReadResolvedEvent() (Event, NSResult, error) {
	if nr.popDue {
		nr.ns.pop()
		nr.popDue = false
	}

	ev, err := nr.Reader.ReadEvent()
	if err != nil {
		return ev, NSResult{Kind: NSUnbound}, err
	}

	switch ev.Kind {
	case StartTag:
		nr.ns.push(ev)
		return ev, nr.ns.resolve(QName(ev.Name()), true), nil
	case EmptyTag:
		nr.ns.push(ev)
		res := nr.ns.resolve(QName(ev.Name()), true)
		nr.popDue = true
		return ev, res, nil
	case EndTag:
		res := nr.ns.resolve(QName(ev.Name()), true)
		nr.popDue = true
		return ev, res, nil
	default:
		return ev, NSResult{Kind: NSUnbound}, nil
	}
}

// EventNamespace resolves an element QName (using the default
// namespace for unprefixed names) against the bindings currently in
// scope.
func (nr *NsReader) EventNamespace(qname QName) NSResult {
	return nr.ns.resolve(qname, true)
}

// AttributeNamespace resolves an attribute QName. Unprefixed attribute
// names are never subject to the default namespace.
func (nr *NsReader) AttributeNamespace(qname QName) NSResult {
	return nr.ns.resolve(qname, false)
}

// Prefixes returns the prefix of every binding currently in scope, most
// recently declared first.
func (nr *NsReader) Prefixes() []Prefix {
	return nr.ns.prefixes()
}
