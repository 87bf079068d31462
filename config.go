package xmlevents

// Config holds the tunable behaviors of a Reader. DefaultConfig (not the
// zero value, which leaves every option off) matches quick-xml-style
// defaults for the newer explicit-buffer reader: end-tag names are
// checked, comments are not checked for stray "--", and empty elements
// are reported as a single EmptyTag event rather than expanded.
type Config struct {
	// CheckComments, when set, rejects "--" appearing anywhere in a
	// comment body other than as its closing "-->".
	CheckComments bool

	// CheckEndNames, when set, raises MismatchedEndTag when a closing
	// tag's name does not match the currently open element.
	CheckEndNames bool

	// ExpandEmptyElements, when set, reports "<x/>" as a Start event
	// followed by a synthetic End event instead of a single Empty event.
	ExpandEmptyElements bool

	// TrimMarkupNamesInClosingTags, when set, strips surrounding
	// whitespace from the name in "</  x  >".
	TrimMarkupNamesInClosingTags bool

	// TrimTextStart strips leading whitespace from Text events.
	TrimTextStart bool

	// TrimTextEnd strips trailing whitespace from Text events.
	TrimTextEnd bool
}

// DefaultConfig returns the library's default configuration:
// end-tag names are checked, nothing else is.
func DefaultConfig() Config {
	return Config{CheckEndNames: true}
}

// WithCheckComments returns a copy of c with CheckComments set.
func (c Config) WithCheckComments(v bool) Config {
	c.CheckComments = v
	return c
}

// WithCheckEndNames returns a copy of c with CheckEndNames set.
func (c Config) WithCheckEndNames(v bool) Config {
	c.CheckEndNames = v
	return c
}

// WithExpandEmptyElements returns a copy of c with ExpandEmptyElements set.
func (c Config) WithExpandEmptyElements(v bool) Config {
	c.ExpandEmptyElements = v
	return c
}

// WithTrimMarkupNamesInClosingTags returns a copy of c with
// TrimMarkupNamesInClosingTags set.
func (c Config) WithTrimMarkupNamesInClosingTags(v bool) Config {
	c.TrimMarkupNamesInClosingTags = v
	return c
}

// WithTrimTextStart returns a copy of c with TrimTextStart set.
func (c Config) WithTrimTextStart(v bool) Config {
	c.TrimTextStart = v
	return c
}

// WithTrimTextEnd returns a copy of c with TrimTextEnd set.
func (c Config) WithTrimTextEnd(v bool) Config {
	c.TrimTextEnd = v
	return c
}
