package core

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	jsoniter "github.com/json-iterator/go"

	"github.com/innocenzi/dependi/internal/types"
)

// ReplaceCommand is the command identifier embedded in hover links. Any
// rendering surface that supports clickable references resolves it back to
// the replace handler.
const ReplaceCommand = "dependi.replaceVersion"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodeReplacePayload serializes a replace instruction for transport
// inside a hover document: JSON, then URI-encoded.
func EncodeReplacePayload(instruction types.ReplaceInstruction) (string, error) {
	data, err := json.Marshal(instruction)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode replace instruction").
			WithCause(err)
	}
	return url.QueryEscape(string(data)), nil
}

// DecodeReplacePayload parses a payload previously produced by
// EncodeReplacePayload. Malformed payloads are rejected with an
// InvalidArgument error so the command layer can drop them without
// mutating the document.
func DecodeReplacePayload(payload string) (types.ReplaceInstruction, error) {
	raw, err := url.QueryUnescape(payload)
	if err != nil {
		return types.ReplaceInstruction{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("malformed replace payload").
			WithCause(err)
	}
	var instruction types.ReplaceInstruction
	if err := json.Unmarshal([]byte(raw), &instruction); err != nil {
		return types.ReplaceInstruction{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("malformed replace payload").
			WithCause(err)
	}
	if strings.TrimSpace(instruction.Value) == "" {
		return types.ReplaceInstruction{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("replace payload has empty value")
	}
	if err := validateRange(instruction.Range); err != nil {
		return types.ReplaceInstruction{}, err
	}
	return instruction, nil
}

// CommandLink renders a clickable markdown reference whose target carries
// the encoded instruction.
func CommandLink(label string, instruction types.ReplaceInstruction) (string, error) {
	payload, err := EncodeReplacePayload(instruction)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("[%s](command:%s?%s)", label, ReplaceCommand, payload), nil
}

func validateRange(r types.Range) error {
	if r.Start.Line < 0 || r.Start.Character < 0 || r.End.Line < 0 || r.End.Character < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("replace payload range has negative positions")
	}
	if r.End.Line < r.Start.Line || (r.End.Line == r.Start.Line && r.End.Character < r.Start.Character) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("replace payload range ends before it starts")
	}
	return nil
}
