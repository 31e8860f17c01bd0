package adapters

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"github.com/innocenzi/dependi/internal/types"
)

// FileDocument is a line/character addressed text buffer backed by a file
// on disk. It is the concrete stand-in for an editor buffer: replacements
// mutate the in-memory lines, Save persists them.
type FileDocument struct {
	path  string
	lines []string
}

func NewFileDocument(path string) (*FileDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("manifest not found: %s", path)).
			WithCause(err)
	}
	return &FileDocument{path: path, lines: strings.Split(string(data), "\n")}, nil
}

// NewDocumentFromString creates an unsaved in-memory document. Save is a
// no-op until a path is attached.
func NewDocumentFromString(content string) *FileDocument {
	return &FileDocument{lines: strings.Split(content, "\n")}
}

func (d *FileDocument) Path() string {
	return d.path
}

func (d *FileDocument) Text() string {
	return strings.Join(d.lines, "\n")
}

// ReplaceRange overwrites the span with text. Ranges are validated against
// the current buffer state; a stale range from an earlier parse is the
// caller's risk.
func (d *FileDocument) ReplaceRange(r types.Range, text string) error {
	if err := d.checkBounds(r); err != nil {
		return err
	}
	startLine := d.lines[r.Start.Line]
	endLine := d.lines[r.End.Line]
	merged := startLine[:r.Start.Character] + text + endLine[r.End.Character:]
	replacement := strings.Split(merged, "\n")

	var lines []string
	lines = append(lines, d.lines[:r.Start.Line]...)
	lines = append(lines, replacement...)
	lines = append(lines, d.lines[r.End.Line+1:]...)
	d.lines = lines
	return nil
}

func (d *FileDocument) Save(ctx context.Context) error {
	if d.path == "" {
		log.Ctx(ctx).Debug().Msg("in-memory document, skipping save")
		return nil
	}
	if err := os.WriteFile(d.path, []byte(d.Text()), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to save document: %s", d.path)).
			WithCause(err)
	}
	return nil
}

func (d *FileDocument) checkBounds(r types.Range) error {
	if r.Start.Line < 0 || r.End.Line >= len(d.lines) || r.End.Line < r.Start.Line {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("range lines %d-%d out of bounds", r.Start.Line, r.End.Line))
	}
	if r.Start.Character < 0 || r.Start.Character > len(d.lines[r.Start.Line]) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("start character %d out of bounds on line %d", r.Start.Character, r.Start.Line))
	}
	if r.End.Character < 0 || r.End.Character > len(d.lines[r.End.Line]) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("end character %d out of bounds on line %d", r.End.Character, r.End.Line))
	}
	if r.End.Line == r.Start.Line && r.End.Character < r.Start.Character {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("range ends before it starts")
	}
	return nil
}
