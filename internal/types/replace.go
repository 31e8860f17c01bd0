package types

// ReplaceInstruction is the atomic unit of the replace-command protocol:
// overwrite Range in the current document with Value. Instructions are
// created at hover-render time, serialized into the hover document, and
// decoded again when the user invokes the command. The range is computed
// against the document state at render time and does not auto-adjust.
type ReplaceInstruction struct {
	Value string `json:"value"`
	Range Range  `json:"range"`
}
