package xmlevents

import "bytes"

// Parser is the byte-level tokenizer state machine (§4.2). It is fed
// successive, ever-growing views of the bytes belonging to a single
// event (Reader.readUnit resets it between events) and reports how far
// into that view a complete syntactic unit extends.
//
// A Parser carries no reference to its input: it only ever looks at the
// []byte handed to Feed, plus a handful of counters, which is what makes
// it restartable across chunk boundaries with no buffering of its own.
type Parser struct {
	state   tokenState
	scanPos int // absolute index into the buffer passed to Feed

	quote        quoteState // stateStartOrEmpty, stateDoctype
	bracketDepth int        // stateDoctype internal-subset depth

	// CheckComments mirrors Config.CheckComments; Reader keeps it in sync.
	CheckComments bool

	// commentHyphenAt holds the absolute offset of an illegal "--" found
	// while scanning a comment body, or -1 when none was found.
	commentHyphenAt int
}

// NewParser returns a Parser ready to scan from the start of a buffer.
func NewParser() *Parser {
	p := &Parser{}
	p.beginEvent()
	return p
}

// beginEvent resets the per-event scanning state; call it once the
// previous event has been fully emitted and a fresh one is about to
// start at buffer offset 0.
func (p *Parser) beginEvent() {
	p.state = stateText
	p.scanPos = 0
	p.quote = quoteNone
	p.bracketDepth = 0
	p.commentHyphenAt = -1
}

// Feed classifies buf, which always starts at the beginning of the
// current event and grows monotonically across calls. It returns
// outcomeNeedData when buf does not yet contain a complete unit.
func (p *Parser) Feed(buf []byte, atEOF bool) feedResult {
	for {
		switch p.state {
		case stateText:
			rest := buf[p.scanPos:]
			idx := bytes.IndexByte(rest, '<')
			if idx < 0 {
				if atEOF && len(buf) > 0 {
					return feedResult{outcomeText, len(buf)}
				}
				p.scanPos = len(buf)
				return feedResult{outcome: outcomeNeedData}
			}
			absPos := p.scanPos + idx
			if absPos == 0 {
				p.state = stateSawLt
				p.scanPos = 1
				continue
			}
			return feedResult{outcomeText, absPos}

		case stateSawLt:
			if p.scanPos >= len(buf) {
				return feedResult{outcome: outcomeNeedData}
			}
			switch buf[p.scanPos] {
			case '/':
				p.scanPos++
				p.state = stateEndTag
			case '!':
				p.scanPos++
				p.state = stateBangLookahead
			case '?':
				p.scanPos++
				p.state = statePIOrDecl
			default:
				p.state = stateStartOrEmpty
			}
			continue

		case stateBangLookahead:
			if res, ok := p.feedBangLookahead(buf); ok {
				continue
			} else {
				return res
			}

		case stateComment:
			res, cont := p.feedComment(buf)
			if !cont {
				return res
			}
			continue

		case stateCData:
			idx := bytes.Index(buf[p.scanPos:], []byte("]]>"))
			if idx < 0 {
				return feedResult{outcome: outcomeNeedData}
			}
			return feedResult{outcomeCData, p.scanPos + idx + 3}

		case stateDoctype:
			res, cont := p.feedDoctype(buf)
			if !cont {
				return res
			}
			continue

		case statePIOrDecl:
			idx := bytes.Index(buf[p.scanPos:], []byte("?>"))
			if idx < 0 {
				return feedResult{outcome: outcomeNeedData}
			}
			return feedResult{outcomePI, p.scanPos + idx + 2}

		case stateStartOrEmpty:
			res, cont := p.feedTagBody(buf, false)
			if !cont {
				return res
			}
			continue

		case stateEndTag:
			idx := bytes.IndexByte(buf[p.scanPos:], '>')
			if idx < 0 {
				return feedResult{outcome: outcomeNeedData}
			}
			return feedResult{outcomeEndTag, p.scanPos + idx + 1}
		}
	}
}

// feedBangLookahead disambiguates "<!--", "<![CDATA[", and everything
// else (treated as doctype-like bang markup). The second return value is
// true when the caller should loop again (state advanced in place).
func (p *Parser) feedBangLookahead(buf []byte) (feedResult, bool) {
	rest := buf[p.scanPos:]
	if len(rest) == 0 {
		return feedResult{outcome: outcomeNeedData}, false
	}
	switch rest[0] {
	case '-':
		if len(rest) < 2 {
			return feedResult{outcome: outcomeNeedData}, false
		}
		if rest[1] == '-' {
			p.scanPos += 2
			p.state = stateComment
			return feedResult{}, true
		}
		p.state = stateDoctype
		return feedResult{}, true
	case '[':
		const want = "[CDATA["
		if len(rest) < len(want) {
			if !bytes.HasPrefix([]byte(want), rest) {
				p.state = stateDoctype
				return feedResult{}, true
			}
			return feedResult{outcome: outcomeNeedData}, false
		}
		if bytes.Equal(rest[:len(want)], []byte(want)) {
			p.scanPos += len(want)
			p.state = stateCData
			return feedResult{}, true
		}
		p.state = stateDoctype
		return feedResult{}, true
	default:
		p.state = stateDoctype
		return feedResult{}, true
	}
}

func (p *Parser) feedComment(buf []byte) (feedResult, bool) {
	idx := bytes.Index(buf[p.scanPos:], []byte("-->"))
	if idx < 0 {
		return feedResult{outcome: outcomeNeedData}, false
	}
	body := buf[p.scanPos : p.scanPos+idx]
	if p.CheckComments {
		if j := bytes.Index(body, []byte("--")); j >= 0 {
			p.commentHyphenAt = p.scanPos + j + 1
		}
	}
	return feedResult{outcomeComment, p.scanPos + idx + 3}, false
}

func (p *Parser) feedDoctype(buf []byte) (feedResult, bool) {
	i := p.scanPos
	for i < len(buf) {
		c := buf[i]
		switch {
		case p.quote != quoteNone:
			if (p.quote == quoteSingle && c == '\'') || (p.quote == quoteDouble && c == '"') {
				p.quote = quoteNone
			}
		case c == '\'':
			p.quote = quoteSingle
		case c == '"':
			p.quote = quoteDouble
		case c == '[':
			p.bracketDepth++
		case c == ']':
			if p.bracketDepth > 0 {
				p.bracketDepth--
			}
		case c == '>' && p.bracketDepth == 0:
			p.scanPos = i + 1
			return feedResult{outcomeDoctype, i + 1}, false
		}
		i++
	}
	p.scanPos = i
	return feedResult{outcome: outcomeNeedData}, false
}

// feedTagBody scans a start/empty tag body for the first unquoted '>'.
func (p *Parser) feedTagBody(buf []byte, isEnd bool) (feedResult, bool) {
	i := p.scanPos
	for i < len(buf) {
		c := buf[i]
		if p.quote != quoteNone {
			if (p.quote == quoteSingle && c == '\'') || (p.quote == quoteDouble && c == '"') {
				p.quote = quoteNone
			}
			i++
			continue
		}
		switch c {
		case '\'':
			p.quote = quoteSingle
		case '"':
			p.quote = quoteDouble
		case '>':
			n := i + 1
			if i > 0 && buf[i-1] == '/' {
				return feedResult{outcomeEmptyTag, n}, false
			}
			return feedResult{outcomeStartTag, n}, false
		}
		i++
	}
	p.scanPos = i
	return feedResult{outcome: outcomeNeedData}, false
}

// CommentHyphenAt returns the offset recorded by the most recently
// completed comment, or -1 if none was found (or CheckComments is off).
func (p *Parser) CommentHyphenAt() int64 {
	if p.commentHyphenAt < 0 {
		return -1
	}
	return int64(p.commentHyphenAt)
}

// AtEventBoundary reports whether the parser is still in its initial
// text-scanning state, i.e. has not yet committed to any markup.
func (p *Parser) AtEventBoundary() bool {
	return p.state == stateText
}

// detectEncodingMarker inspects the first bytes of a fresh document for a
// BOM or a raw UTF-16-like pattern (no BOM, but a '<' shows up as the
// high or low byte of a UTF-16 code unit). n is the number of bytes that
// belong to the marker itself (consumed); for a pattern match with no
// literal BOM, n is 0 since those bytes are still part of the content.
func detectEncodingMarker(b []byte) (outcome feedOutcome, n int, ok bool) {
	switch {
	case len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		return outcomeEncodingUTF8, 3, true
	case len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE:
		return outcomeEncodingUTF16LE, 2, true
	case len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF:
		return outcomeEncodingUTF16BE, 2, true
	case len(b) >= 4 && b[0] == 0x00 && b[1] == '<' && b[2] == 0x00 && b[3] == '?':
		return outcomeEncodingUTF16BE, 0, true
	case len(b) >= 4 && b[0] == '<' && b[1] == 0x00 && b[2] == '?' && b[3] == 0x00:
		return outcomeEncodingUTF16LE, 0, true
	default:
		return 0, 0, false
	}
}
