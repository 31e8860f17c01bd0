package types

type Ecosystem string

const (
	EcosystemRust       Ecosystem = "rust"
	EcosystemGo         Ecosystem = "go"
	EcosystemJavaScript Ecosystem = "javascript"
	EcosystemPython     Ecosystem = "python"
	EcosystemUnknown    Ecosystem = "unknown"
)

type Classification string

const (
	ClassificationCompatible   Classification = "compatible"
	ClassificationIncompatible Classification = "incompatible"
	ClassificationError        Classification = "error"
)

type DecorationPosition string

const (
	DecorationPositionBefore DecorationPosition = "before"
	DecorationPositionAfter  DecorationPosition = "after"
)
