package xmlevents

// tokenState is the tokenizer's restart state. It and the handful of
// counters on Parser are the entirety of what a chunk boundary must
// preserve: re-entry after a NeedData result continues the scan exactly
// where it left off.
type tokenState uint8

const (
	stateInit tokenState = iota
	stateText             // scanning character data, looking for '<'
	stateSawLt            // just consumed '<', deciding what follows
	stateBangLookahead     // consumed "<!", disambiguating --, [CDATA[, or doctype
	stateComment           // inside <!-- ... -->
	stateCData             // inside <![CDATA[ ... ]]>
	stateDoctype           // inside <!DOCTYPE ... >
	statePIOrDecl          // inside <? ... ?>
	stateStartOrEmpty      // inside <name ...> or <name .../>
	stateEndTag            // inside </name ...>
)

type quoteState uint8

const (
	quoteNone quoteState = iota
	quoteSingle
	quoteDouble
)

// feedOutcome is the classification of a completed syntactic unit, or
// NeedData when the accumulated buffer does not yet hold one.
type feedOutcome uint8

const (
	outcomeNeedData feedOutcome = iota
	outcomeText
	outcomeComment
	outcomeCData
	outcomeDoctype
	outcomePI // also covers the XML declaration; event.go distinguishes by body prefix
	outcomeEmptyTag
	outcomeStartTag
	outcomeEndTag
	outcomeEncodingUTF8
	outcomeEncodingUTF16BE
	outcomeEncodingUTF16LE
)

// feedResult reports how many bytes of the buffer passed to Parser.Feed
// belong to the classified unit (its terminator included) when outcome is
// not NeedData.
type feedResult struct {
	outcome feedOutcome
	n       int
}
