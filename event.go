package xmlevents

import "bytes"

// EventKind discriminates the variants of Event (§3).
type EventKind uint8

const (
	_ EventKind = iota
	StartTag
	EmptyTag
	EndTag
	Text
	CData
	Comment
	Decl
	PI
	DocType
	GeneralRef
	Eof
)

func (k EventKind) String() string {
	switch k {
	case StartTag:
		return "StartTag"
	case EmptyTag:
		return "EmptyTag"
	case EndTag:
		return "EndTag"
	case Text:
		return "Text"
	case CData:
		return "CData"
	case Comment:
		return "Comment"
	case Decl:
		return "Decl"
	case PI:
		return "PI"
	case DocType:
		return "DocType"
	case GeneralRef:
		return "GeneralRef"
	case Eof:
		return "Eof"
	default:
		return "Unknown"
	}
}

// Event is a tagged union over a single parsed unit. Its byte slices are
// borrowed from whatever buffer the Reader fed to the tokenizer for this
// call; they are only valid until the next ReadEvent call touches that
// buffer. Call Owned to obtain a copy that outlives it.
type Event struct {
	Kind EventKind

	// raw is the payload described in §3's table: for StartTag, EmptyTag
	// and Decl it is the full tag body (name plus attributes, and for
	// EmptyTag the trailing '/'); for EndTag it is the tag name; for
	// everything else it is the element's text/body content.
	raw []byte

	// nameEnd marks where the name ends within raw, for StartTag,
	// EmptyTag and Decl only.
	nameEnd int
}

// Name returns the element or declaration name, for StartTag, EmptyTag,
// EndTag and Decl. It is nil for every other kind.
func (e Event) Name() []byte {
	switch e.Kind {
	case StartTag, EmptyTag, Decl:
		return e.raw[:e.nameEnd]
	case EndTag:
		return e.raw
	default:
		return nil
	}
}

// Text returns the raw body bytes for Text, CData, Comment, PI, DocType
// and GeneralRef. Text and GeneralRef bodies are not unescaped; call
// Unescape to expand entities.
func (e Event) Text() []byte {
	return e.raw
}

// Attributes returns an iterator over the attributes of a StartTag,
// EmptyTag or Decl. For every other kind it returns an iterator over an
// empty body.
func (e Event) Attributes() *Attributes {
	switch e.Kind {
	case StartTag, Decl:
		return NewAttributes(e.raw[e.nameEnd:])
	case EmptyTag:
		return NewAttributes(trimTrailingSlash(e.raw[e.nameEnd:]))
	default:
		return NewAttributes(nil)
	}
}

// Owned returns a copy of e whose byte slices do not alias the Reader's
// scratch buffer.
func (e Event) Owned() Event {
	if e.raw == nil {
		return e
	}
	cp := append([]byte(nil), e.raw...)
	return Event{Kind: e.Kind, raw: cp, nameEnd: e.nameEnd}
}

func trimTrailingSlash(b []byte) []byte {
	j := len(b)
	for j > 0 && isAttrSpace(b[j-1]) {
		j--
	}
	if j > 0 && b[j-1] == '/' {
		j--
	}
	return b[:j]
}

func stripDelims(full []byte, prefixLen, suffixLen int) []byte {
	return full[prefixLen : len(full)-suffixLen]
}

func computeTagNameEnd(body []byte) int {
	i := 0
	for i < len(body) && !isAttrSpace(body[i]) && body[i] != '/' {
		i++
	}
	return i
}

func isXMLDecl(body []byte) bool {
	return len(body) >= 4 && body[0] == 'x' && body[1] == 'm' && body[2] == 'l' && isAttrSpace(body[3])
}

// Reader runs the tokenizer to completion one event at a time (§4.4),
// maintaining the open-element stack, end-name matching and synthetic
// end emission for expanded empties on top of it.
type Reader struct {
	input Input
	tok   *Parser
	cfg   Config

	eventStart int64 // document position where the in-progress event began

	openedBuffer []byte
	openedStarts []int

	pendingEndSynthetic bool
	pendingEndName      []byte

	pendingEvents []Event
	pendingIdx    int

	lastErrorOffset int64
	encoding        string
	sawFirstFill    bool
	eof             bool
}

// NewReader returns a Reader over input using DefaultConfig.
func NewReader(input Input) *Reader {
	return NewReaderWithConfig(input, DefaultConfig())
}

// NewReaderWithConfig returns a Reader over input using cfg.
func NewReaderWithConfig(input Input, cfg Config) *Reader {
	tok := NewParser()
	tok.CheckComments = cfg.CheckComments
	return &Reader{input: input, tok: tok, cfg: cfg}
}

// Config returns the reader's current configuration.
func (r *Reader) Config() Config { return r.cfg }

// SetConfig replaces the reader's configuration, taking effect from the
// next ReadEvent call on.
func (r *Reader) SetConfig(cfg Config) {
	r.cfg = cfg
	r.tok.CheckComments = cfg.CheckComments
}

// BufferPosition is the byte offset of the cursor into the underlying
// Input; it equals the input's length once Eof has been reached.
func (r *Reader) BufferPosition() int64 { return r.input.Position() }

// ErrorPosition is the byte offset recorded by the most recent error
// returned from ReadEvent.
func (r *Reader) ErrorPosition() int64 { return r.lastErrorOffset }

// Encoding reports the encoding detected from a leading BOM or raw
// UTF-16 byte pattern, or (when neither was seen) named as UTF-16BE or
// UTF-16LE by the XML declaration: "UTF-8", "UTF-16BE", "UTF-16LE", or
// "" if none was found (the input is assumed UTF-8).
func (r *Reader) Encoding() string { return r.encoding }

func (r *Reader) recordEncoding(o feedOutcome) {
	switch o {
	case outcomeEncodingUTF8:
		r.encoding = "UTF-8"
	case outcomeEncodingUTF16BE:
		r.encoding = "UTF-16BE"
	case outcomeEncodingUTF16LE:
		r.encoding = "UTF-16LE"
	}
}

func (r *Reader) pushOpened(name []byte) {
	r.openedStarts = append(r.openedStarts, len(r.openedBuffer))
	r.openedBuffer = append(r.openedBuffer, name...)
}

// popOpened discards the top of the open-element stack without
// comparing names; used when closing a synthetic empty-element end.
func (r *Reader) popOpened() {
	if len(r.openedStarts) == 0 {
		return
	}
	last := len(r.openedStarts) - 1
	start := r.openedStarts[last]
	r.openedStarts = r.openedStarts[:last]
	r.openedBuffer = r.openedBuffer[:start]
}

// matchOpened pops the top of the open-element stack and compares it
// against found, the name on a real closing tag.
func (r *Reader) matchOpened(found []byte) error {
	if len(r.openedStarts) == 0 {
		return &IllFormedError{offset: r.eventStart, Kind: UnmatchedEndTag, Found: string(found)}
	}
	last := len(r.openedStarts) - 1
	start := r.openedStarts[last]
	expected := append([]byte(nil), r.openedBuffer[start:]...)
	r.openedStarts = r.openedStarts[:last]
	r.openedBuffer = r.openedBuffer[:start]
	if r.cfg.CheckEndNames && !bytes.Equal(expected, found) {
		return &IllFormedError{offset: r.eventStart, Kind: MismatchedEndTag, Expected: string(expected), Found: string(found)}
	}
	return nil
}

// buildEndTagName returns the bytes exposed as the EndTag's Name (which
// depend on TrimMarkupNamesInClosingTags) and the fully leading- and
// trailing-trimmed name used for open-stack matching regardless of that
// setting.
func (r *Reader) buildEndTagName(body []byte) (exposed, matchName []byte) {
	i := 0
	for i < len(body) && isAttrSpace(body[i]) {
		i++
	}
	ltrimmed := body[i:]
	j := len(ltrimmed)
	for j > 0 && isAttrSpace(ltrimmed[j-1]) {
		j--
	}
	matchName = ltrimmed[:j]
	if r.cfg.TrimMarkupNamesInClosingTags {
		return matchName, matchName
	}
	return ltrimmed, matchName
}

// illFormed is a convenience for returning an Eof-kind Event alongside a
// recoverable IllFormedError.
func (r *Reader) illFormed(kind IllFormedKind, offset int64, expected, found string) (Event, error) {
	return Event{Kind: Eof}, &IllFormedError{offset: offset, Kind: kind, Expected: expected, Found: found}
}

// readUnit runs the tokenizer to completion for one syntactic unit,
// growing its view of the input across successive Fill calls. clean
// reports a graceful end of input at an event boundary, distinct from a
// SyntaxError for an unterminated construct.
func (r *Reader) readUnit() (outcome feedOutcome, raw []byte, clean bool, err error) {
	r.tok.beginEvent()
	var prev []byte
	for {
		chunk, ferr := r.input.Fill()
		if ferr != nil {
			return 0, nil, false, ferr
		}
		atEOF := len(chunk) == len(prev)
		prev = chunk

		res := r.tok.Feed(chunk, atEOF)
		if res.outcome != outcomeNeedData {
			r.input.Consume(res.n)
			return res.outcome, chunk[:res.n], false, nil
		}
		if atEOF {
			if len(chunk) == 0 {
				return 0, nil, true, nil
			}
			return 0, nil, false, NewSyntaxError(r.eventStart, "unterminated construct at end of input")
		}
	}
}

// detectLeadingEncoding runs once, before the first event, inspecting
// the first bytes of the document for a BOM or a raw UTF-16 pattern.
func (r *Reader) detectLeadingEncoding() error {
	r.sawFirstFill = true
	chunk, err := r.input.Fill()
	if err != nil {
		return err
	}
	if len(chunk) < 2 {
		return nil
	}
	if outcome, n, ok := detectEncodingMarker(chunk); ok {
		r.input.Consume(n)
		r.recordEncoding(outcome)
	}
	return nil
}

// ReadEvent returns the next event (§4.4). Once the input is exhausted
// it returns Eof forever; once a fatal error (Syntax or I/O) has been
// returned it also returns Eof forever. Recoverable errors (IllFormed)
// leave the reader usable: the next call continues past the offending
// construct.
func (r *Reader) ReadEvent() (Event, error) {
	if r.eof {
		return Event{Kind: Eof}, nil
	}

	if r.pendingEndSynthetic {
		r.pendingEndSynthetic = false
		name := r.pendingEndName
		r.pendingEndName = nil
		r.popOpened()
		return Event{Kind: EndTag, raw: name}, nil
	}

	if r.pendingIdx < len(r.pendingEvents) {
		ev := r.pendingEvents[r.pendingIdx]
		r.pendingIdx++
		if r.pendingIdx >= len(r.pendingEvents) {
			r.pendingEvents, r.pendingIdx = nil, 0
		}
		return ev, nil
	}

	if !r.sawFirstFill {
		if err := r.detectLeadingEncoding(); err != nil {
			r.eof = true
			return Event{Kind: Eof}, err
		}
	}

	for {
		r.eventStart = r.input.Position()
		outcome, raw, clean, err := r.readUnit()
		if err != nil {
			r.lastErrorOffset = r.eventStart
			r.eof = true
			return Event{Kind: Eof}, err
		}
		if clean {
			r.eof = true
			return Event{Kind: Eof}, nil
		}

		switch outcome {
		case outcomeText:
			text := raw
			if r.cfg.TrimTextStart {
				text = bytes.TrimLeft(text, " \t\r\n")
			}
			if r.cfg.TrimTextEnd {
				text = bytes.TrimRight(text, " \t\r\n")
			}
			if len(text) == 0 {
				continue
			}
			pieces := splitTextRefs(text)
			if len(pieces) == 0 {
				continue
			}
			if len(pieces) > 1 {
				r.pendingEvents = pieces[1:]
				r.pendingIdx = 0
			}
			return pieces[0], nil

		case outcomeComment:
			if r.cfg.CheckComments {
				if hy := r.tok.CommentHyphenAt(); hy >= 0 {
					hy += r.eventStart
					r.lastErrorOffset = hy
					return r.illFormed(DoubleHyphenInComment, hy, "", "")
				}
			}
			return Event{Kind: Comment, raw: stripDelims(raw, 4, 3)}, nil

		case outcomeCData:
			return Event{Kind: CData, raw: stripDelims(raw, 9, 3)}, nil

		case outcomeDoctype:
			var body []byte
			if len(raw) >= 10 {
				body = stripDelims(raw, 9, 1)
			}
			if len(bytes.TrimLeft(body, " \t\r\n")) == 0 {
				r.lastErrorOffset = r.eventStart
				return r.illFormed(MissingDoctypeName, r.eventStart, "", "")
			}
			return Event{Kind: DocType, raw: body}, nil

		case outcomePI:
			body := stripDelims(raw, 2, 2)
			if isXMLDecl(body) {
				ev := Event{Kind: Decl, raw: body, nameEnd: 3}
				if _, ok, _ := TryGetAttribute(ev.raw[ev.nameEnd:], "version"); !ok {
					r.lastErrorOffset = r.eventStart
					return r.illFormed(MissingDeclVersion, r.eventStart, "", "")
				}
				r.applyDeclaredEncoding(ev)
				return ev, nil
			}
			return Event{Kind: PI, raw: body}, nil

		case outcomeStartTag, outcomeEmptyTag:
			tagBody := stripDelims(raw, 1, 1)
			nameEnd := computeTagNameEnd(tagBody)
			name := tagBody[:nameEnd]

			if outcome == outcomeEmptyTag {
				if r.cfg.ExpandEmptyElements {
					r.pushOpened(name)
					r.pendingEndSynthetic = true
					r.pendingEndName = append([]byte(nil), name...)
					return Event{Kind: StartTag, raw: trimTrailingSlash(tagBody), nameEnd: nameEnd}, nil
				}
				return Event{Kind: EmptyTag, raw: tagBody, nameEnd: nameEnd}, nil
			}
			r.pushOpened(name)
			return Event{Kind: StartTag, raw: tagBody, nameEnd: nameEnd}, nil

		case outcomeEndTag:
			tagBody := stripDelims(raw, 2, 1)
			exposed, matchName := r.buildEndTagName(tagBody)
			if merr := r.matchOpened(matchName); merr != nil {
				r.lastErrorOffset = r.eventStart
				return Event{Kind: Eof}, merr
			}
			return Event{Kind: EndTag, raw: exposed}, nil
		}
	}
}

// splitTextRefs splits a completed text region into an ordered sequence
// of Text and GeneralRef events wherever it contains a well-formed
// "&...;" shape. A stray "&" with no following ";" is left as trailing
// Text rather than treated as an error — general-reference recognition
// here is advisory, not validating.
func splitTextRefs(raw []byte) []Event {
	var out []Event
	i := 0
	for i < len(raw) {
		amp := bytes.IndexByte(raw[i:], '&')
		if amp < 0 {
			out = append(out, Event{Kind: Text, raw: raw[i:]})
			break
		}
		amp += i
		if amp > i {
			out = append(out, Event{Kind: Text, raw: raw[i:amp]})
		}
		semi := bytes.IndexByte(raw[amp:], ';')
		if semi < 0 {
			out = append(out, Event{Kind: Text, raw: raw[amp:]})
			break
		}
		semi += amp
		out = append(out, Event{Kind: GeneralRef, raw: raw[amp+1 : semi]})
		i = semi + 1
	}
	return out
}

func isRecoverable(err error) bool {
	switch err.(type) {
	case *IllFormedError, *EncodingError, *AttrError:
		return true
	default:
		return false
	}
}

// ReadToEnd consumes events until the matching EndTag for name is seen
// at the current depth, tracking nested same-named elements. It returns
// a SyntaxError if Eof is reached first.
func (r *Reader) ReadToEnd(name []byte) error {
	depth := 1
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			if isRecoverable(err) {
				continue
			}
			return err
		}
		switch ev.Kind {
		case Eof:
			return NewSyntaxError(r.eventStart, "unexpected end of input inside element \""+string(name)+"\"")
		case StartTag:
			if bytes.Equal(ev.Name(), name) {
				depth++
			}
		case EndTag:
			if bytes.Equal(ev.Name(), name) {
				depth--
				if depth == 0 {
					return nil
				}
			}
		}
	}
}

// ReadText expects a run of Text and GeneralRef events (an element's
// text content, possibly split around entity references) immediately
// followed by the matching EndTag for name, and returns the decoded,
// unescaped text. An element with no content at all (an immediate
// matching EndTag) yields "".
func (r *Reader) ReadText(name []byte) (string, error) {
	var raw bytes.Buffer
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			return "", err
		}
		switch ev.Kind {
		case EndTag:
			if !bytes.Equal(ev.Name(), name) {
				return "", NewSyntaxError(r.eventStart, "expected matching end tag for \""+string(name)+"\"")
			}
			decoded, err := r.Decode(raw.Bytes())
			if err != nil {
				return "", err
			}
			return Unescape(decoded)
		case Text:
			raw.Write(ev.raw)
		case GeneralRef:
			raw.WriteByte('&')
			raw.Write(ev.raw)
			raw.WriteByte(';')
		default:
			return "", NewSyntaxError(r.eventStart, "expected text content in \""+string(name)+"\"")
		}
	}
}
