package parser

import (
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"runbook-hq/runbook/pkg/rbl/ast"
	rblerrors "runbook-hq/runbook/pkg/rbl/errors"
)

// Parser loads runbook files into the AST.
type Parser struct {
	// showContent controls whether parse diagnostics may echo file
	// content. Disabled for sensitive files.
	showContent bool
}

// NewParser creates a parser with content display enabled.
func NewParser() *Parser {
	return &Parser{showContent: true}
}

// WithShowContent controls whether diagnostics may echo file content.
// It returns the parser for chaining.
func (p *Parser) WithShowContent(show bool) *Parser {
	p.showContent = show
	return p
}

// Parse reads and parses the runbook file at path.
func (p *Parser) Parse(path string) (*ast.Runbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &rblerrors.Error{
			Type:     rblerrors.ErrorTypeIO,
			Message:  "failed to read runbook: " + err.Error(),
			Location: ast.Location{File: path},
		}
	}
	return p.parse(data, path)
}

// ParseBytes parses an in-memory runbook document. The source is
// recorded as the in-memory sentinel, so diagnostics never attempt to
// read a file for it.
func (p *Parser) ParseBytes(data []byte) (*ast.Runbook, error) {
	return p.parse(data, rblerrors.SourceString)
}

func (p *Parser) parse(data []byte, source string) (*ast.Runbook, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, p.syntaxError(source, err)
	}

	// Empty input decodes to a zero node; treat it as an empty runbook.
	if node.Kind == 0 {
		return &ast.Runbook{Location: ast.Location{File: source}}, nil
	}

	var doc yamlRunbook
	if err := node.Decode(&doc); err != nil {
		return nil, p.syntaxError(source, err)
	}

	return buildRunbook(&doc, &node, source), nil
}

// yamlLineRe extracts the line number the YAML loader embeds in its
// error text ("yaml: line 12: ..."). The loader reports no column.
var yamlLineRe = regexp.MustCompile(`line (\d+):`)

// syntaxError converts a YAML loader error into a runbook error with an
// attached diagnosis of why the input is malformed.
func (p *Parser) syntaxError(source string, err error) *rblerrors.Error {
	line := 1
	if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
		line, _ = strconv.Atoi(m[1])
	}

	diag := rblerrors.Classify(rblerrors.DiagnosticRequest{
		Source:      source,
		Line:        line,
		Column:      1,
		ShowContent: p.showContent,
	})

	return &rblerrors.Error{
		Type:      rblerrors.ErrorTypeSyntax,
		Message:   "failed to parse runbook: " + err.Error(),
		Location:  ast.Location{File: source, Line: line, Column: 1},
		Diagnosis: diag,
		Context:   diag.Render(),
	}
}

// buildRunbook transforms the decoded document into the AST, walking the
// node tree in parallel to preserve source positions.
func buildRunbook(doc *yamlRunbook, node *yaml.Node, source string) *ast.Runbook {
	root := documentRoot(node)

	rb := &ast.Runbook{
		Name:        doc.Name,
		Version:     doc.Version,
		Description: doc.Description,
		Tags:        doc.Tags,
		Vars:        doc.Vars,
		Location:    nodeLocation(root, source),
	}

	playsNode := mappingValue(root, "plays")
	for i := range doc.Plays {
		rb.Plays = append(rb.Plays, buildPlay(&doc.Plays[i], sequenceItem(playsNode, i), source))
	}
	return rb
}

func buildPlay(yp *yamlPlay, node *yaml.Node, source string) *ast.Play {
	play := &ast.Play{
		Name:     yp.Name,
		Schedule: yp.Schedule,
		Serial:   yp.Serial,
		Tags:     yp.Tags,
		Location: nodeLocation(node, source),
	}

	tasksNode := mappingValue(node, "tasks")
	for i := range yp.Tasks {
		yt := &yp.Tasks[i]
		play.Tasks = append(play.Tasks, &ast.Task{
			Name:     yt.Name,
			Action:   yt.Action,
			Args:     yt.Args,
			Tags:     yt.Tags,
			Location: nodeLocation(sequenceItem(tasksNode, i), source),
		})
	}
	return play
}

// sequenceItem returns the i-th item of a sequence node, or nil.
func sequenceItem(node *yaml.Node, i int) *yaml.Node {
	if node == nil || node.Kind != yaml.SequenceNode || i >= len(node.Content) {
		return nil
	}
	return node.Content[i]
}

// nodeLocation extracts the source location of a node.
func nodeLocation(node *yaml.Node, source string) ast.Location {
	if node == nil {
		return ast.Location{File: source}
	}
	return ast.Location{File: source, Line: node.Line, Column: node.Column}
}
