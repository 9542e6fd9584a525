package errors

// Fixed text fragments used by the diagnostic engine. Keeping them in one
// place makes the full set of possible outcomes easy to audit: one
// positional header, one offending-line introduction, seven heuristic
// notes, and two fallback sentences.

// positionDetails is the header of every diagnostic. The hedge about the
// location is deliberate: the YAML loader often reports the failure one
// line past the construct that actually caused it.
const positionDetails = "The failure appears to be in '%s': line %d, column %d, but it\nmay be elsewhere in the file depending on the exact syntax problem.\n"

// offendingIntro precedes the echoed source lines and the caret line.
const offendingIntro = "\nThe offending line appears to be:\n\n"

const noteLeadingTab = `
There appears to be a tab character on this line. YAML does not allow
tabs for indentation; replace the tab with spaces.
`

const noteUnquotedVariable = `
This looks like it could be an issue with how the template expression
is quoted. When a value starts with a template expression, the whole
value must be quoted, so that the braces are not mistaken for an inline
mapping. For example:

    command: {{ build_cmd }}

should be written as:

    command: "{{ build_cmd }}"
`

const noteDictMarker = `
This looks like an unquoted template expression used as a mapping
value. Values that consist of a template expression must be quoted:

    vars:
      target:{{ host }}

should be written as:

    vars:
      target: "{{ host }}"
`

const noteUnquotedColon = `
This line contains a colon inside an unquoted value. Colons followed by
a space start a new mapping entry, so the value must be quoted:

    description: warning: this will restart services

should be written as:

    description: "warning: this will restart services"
`

const notePartiallyQuoted = `
This line appears to have a value that is quoted at one end only. When
a value begins with a quote character it must end with the same quote
character:

    message: "restarting now

should be written as:

    message: "restarting now"
`

const noteUnbalancedQuotes = `
This line appears to contain unbalanced quotes. If a quoted value needs
to contain the same kind of quote, switch the outer quotes to the other
kind:

    shell: "echo "hello""

should be written as:

    shell: 'echo "hello"'
`

const noteShorthandMix = `
There appears to be both shorthand key=value syntax and YAML mapping
syntax in this entry. Only one of the two may be used per entry.
`

// Fallback sentences appended to the header when the file context cannot
// be recovered. Non-fatal: the diagnostic degrades rather than failing.
const (
	fallbackCannotOpen  = "\n(could not open file to display line)"
	fallbackLineChanged = "\n(specified line no longer in file, maybe it changed?)"
)
