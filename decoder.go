package xmlevents

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
)

// Decode converts raw bytes carrying the Reader's detected encoding (a
// BOM-observed or declaration-observed UTF-16 variant) into a UTF-8
// string. For plain UTF-8 (the default, when no BOM or declaration
// overrides it) the bytes are converted to a string unchanged.
func (r *Reader) Decode(raw []byte) (string, error) {
	switch r.encoding {
	case "UTF-16BE":
		return r.decodeUTF16(raw, unicode.BigEndian)
	case "UTF-16LE":
		return r.decodeUTF16(raw, unicode.LittleEndian)
	default:
		return string(raw), nil
	}
}

func (r *Reader) decodeUTF16(raw []byte, endian unicode.Endianness) (string, error) {
	dec := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(raw)
	if err != nil {
		return "", &EncodingError{offset: r.eventStart, Message: err.Error()}
	}
	return string(out), nil
}

// applyDeclaredEncoding inspects a Decl event's encoding pseudo-attribute
// and, when it names a UTF-16 variant not already implied by a BOM,
// locks the reader's decoder to it. Declarations naming anything else
// (including "UTF-8", the assumed default) leave the reader unchanged:
// transcoding arbitrary charsets is out of scope.
func (r *Reader) applyDeclaredEncoding(decl Event) {
	attr, ok, _ := TryGetAttribute(decl.raw[decl.nameEnd:], "encoding")
	if !ok {
		return
	}
	switch {
	case bytes.EqualFold(attr.Value, []byte("UTF-16BE")):
		if r.encoding == "" {
			r.encoding = "UTF-16BE"
		}
	case bytes.EqualFold(attr.Value, []byte("UTF-16LE")):
		if r.encoding == "" {
			r.encoding = "UTF-16LE"
		}
	}
}
