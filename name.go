package xmlevents

import "bytes"

// QName is a qualified name: either a bare local name, or "prefix:local".
// It is a newtyped byte slice rather than a struct so it can alias
// directly into whatever buffer backs the event it came from.
type QName []byte

// LocalName is the part of a QName after the first ':', or the whole
// QName when there is no prefix.
type LocalName []byte

// Prefix is the part of a QName before the first ':', or empty when
// there is no prefix.
type Prefix []byte

// Namespace is a resolved namespace URI.
type Namespace []byte

// Split divides a QName at its first ':', returning the prefix (empty
// when absent) and the local name.
func (q QName) Split() (Prefix, LocalName) {
	if i := bytes.IndexByte(q, ':'); i >= 0 {
		return Prefix(q[:i]), LocalName(q[i+1:])
	}
	return nil, LocalName(q)
}

// Prefix returns the prefix component of q, or nil if q is unprefixed.
func (q QName) Prefix() Prefix {
	p, _ := q.Split()
	return p
}

// Local returns the local-name component of q.
func (q QName) Local() LocalName {
	_, l := q.Split()
	return l
}

// String returns q as a string.
func (q QName) String() string { return string(q) }

// String returns p as a string.
func (p Prefix) String() string { return string(p) }

// String returns l as a string.
func (l LocalName) String() string { return string(l) }

// String returns ns as a string.
func (ns Namespace) String() string { return string(ns) }

const xmlnsName = "xmlns"
const xmlnsPrefix = "xmlns:"

// isNamespaceDecl reports whether key is "xmlns" or starts with "xmlns:",
// and if so returns the bound prefix (empty for the default namespace).
func isNamespaceDecl(key []byte) (prefix []byte, ok bool) {
	if bytes.Equal(key, []byte(xmlnsName)) {
		return nil, true
	}
	if bytes.HasPrefix(key, []byte(xmlnsPrefix)) {
		return key[len(xmlnsPrefix):], true
	}
	return nil, false
}
