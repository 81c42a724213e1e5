package core

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	ExportHelper           = "_export_sfc"
	ExportHelperWithStyles = "_export_sfc_with_styles"

	// KeepAliveReference keeps the bundler's tree shaker from dropping
	// ExportHelper once every real call site has been renamed. It is
	// stripped at finalization under whatever name the bundler gave it.
	KeepAliveReference = ExportHelper + "({}, ['to-remove']);"
)

var exportCallPattern = regexp.MustCompile(`export\s+(?:default\s+)?(?:/\*#__PURE__\*/\s*)?` + ExportHelper + `\(`)

type UnitKind int

const (
	UnitIgnored UnitKind = iota
	UnitStyle
	UnitCode
	UnitPassthrough
)

func (k UnitKind) String() string {
	switch k {
	case UnitStyle:
		return "style"
	case UnitCode:
		return "code"
	case UnitPassthrough:
		return "passthrough"
	default:
		return "ignored"
	}
}

type TransformResult struct {
	Code      string
	Kind      UnitKind
	UnitName  string
	Rewritten bool
}

type Transformer struct {
	registry *Registry
	tokens   *TokenGenerator
}

func NewTransformer(registry *Registry, tokens *TokenGenerator) *Transformer {
	return &Transformer{registry: registry, tokens: tokens}
}

// Transform returns nil when the unit is of no interest.
func (t *Transformer) Transform(code, id string, cfg ResolvedBuildConfig) (*TransformResult, error) {
	unitName, ok := UnitNameFor(id)
	if !ok {
		if entry := cfg.LibraryEntry(); entry != "" && strings.Contains(id, entry) {
			return &TransformResult{Code: code, Kind: UnitPassthrough}, nil
		}
		return nil, nil
	}

	if _, err := t.registry.Ensure(unitName, t.tokens.Next); err != nil {
		return nil, err
	}

	if IsStyleUnit(id) {
		t.registry.SetStyle(unitName, code)
		return &TransformResult{Code: "", Kind: UnitStyle, UnitName: unitName}, nil
	}

	result := &TransformResult{Code: code, Kind: UnitCode, UnitName: unitName}
	loc := exportCallPattern.FindStringIndex(code)
	if loc == nil {
		return result, nil
	}

	rel := FindCallEnd(code[loc[0]:])
	if rel == NotFound {
		return result, nil
	}

	result.Code = RewriteExportCall(code, loc[0], loc[0]+rel, t.registry.Marker(unitName))
	result.Rewritten = true
	return result, nil
}

// RewriteExportCall rewrites the export call spanning code[start:end] (end is
// the closing parenthesis) to the style-aware helper with marker appended as
// its last argument.
func RewriteExportCall(code string, start, end int, marker string) string {
	i := end - 1
	for i >= start && unicode.IsSpace(rune(code[i])) {
		i--
	}
	separator := ","
	if i >= start && (code[i] == ',' || code[i] == '(') {
		separator = ""
	}

	var b strings.Builder
	b.Grow(len(code) + len(marker) + len(KeepAliveReference) + 32)
	b.WriteString(code[:start])
	b.WriteString(strings.Replace(code[start:end], ExportHelper, ExportHelperWithStyles, 1))
	b.WriteString(separator)
	b.WriteString(marker)
	b.WriteByte(')')
	b.WriteByte(';')
	b.WriteString(KeepAliveReference)
	b.WriteString(code[end+1:])
	return b.String()
}
