package annotation

import (
	"fmt"
	"go/token"
	"strings"

	"dto-generator/internal/analyze"
	"dto-generator/internal/common"
	"dto-generator/internal/diagnostic"
	"dto-generator/internal/match"
)

// TagKey is the struct tag key carrying field-level mapping options.
const TagKey = "dto"

// Kind identifies one recognized annotation. The set is closed; anything else
// is rejected at parse time.
type Kind int

const (
	KindFrom Kind = iota
	KindRename
	KindTransformFn
	KindSkip
	KindInto
)

// String returns the annotation's surface syntax key.
func (k Kind) String() string {
	switch k {
	case KindFrom:
		return "from"
	case KindRename:
		return "rename"
	case KindTransformFn:
		return "transform_fn"
	case KindSkip:
		return "skip"
	case KindInto:
		return "into"
	default:
		return common.UnknownStr
	}
}

// fieldKeys is the closed set of field-level option keys, used for
// unknown-key suggestions.
var fieldKeys = []string{"rename", "transform_fn", "skip", "into"}

// FuncRef references a transform function, optionally package-qualified.
// "MaskName" refers to a function in the target's own package;
// "some/pkg.MaskName" to one in an importable package.
type FuncRef struct {
	PkgPath string
	Name    string
}

// String returns the reference in its surface form.
func (r FuncRef) String() string {
	if r.PkgPath == "" {
		return r.Name
	}

	return r.PkgPath + "." + r.Name
}

// ParseFuncRef splits a function reference at its last dot.
func ParseFuncRef(s string) FuncRef {
	lastDot := strings.LastIndex(s, ".")
	if lastDot < 0 {
		return FuncRef{Name: s}
	}

	return FuncRef{PkgPath: s[:lastDot], Name: s[lastDot+1:]}
}

// Raw is one parsed annotation occurrence.
type Raw struct {
	Kind Kind
	// Value is the annotation's raw value: the source field name for rename,
	// the type reference for from. Empty for skip/into.
	Value string
	// Func is the parsed function reference for transform_fn.
	Func FuncRef
	// Pos anchors diagnostics to this occurrence.
	Pos token.Position
}

// StructAnnotations is the parsed struct-level annotation set.
type StructAnnotations struct {
	// From is the required source schema reference, nil if absent.
	From *Raw
}

// ParseDirectives parses the struct-level dto: directives of one declaration.
// Only syntactic shape is validated here; semantics belong to the resolver.
func ParseDirectives(directives []analyze.Directive, diags *diagnostic.Diagnostics) StructAnnotations {
	var sa StructAnnotations

	for _, dir := range directives {
		key, value := splitDirective(dir.Text)

		switch key {
		case "from":
			if value == "" {
				diags.AddError(diagnostic.CodeMalformedAttribute,
					"`from` requires a source type, e.g. //dto:from store.User", dir.Pos)
				continue
			}

			if sa.From != nil {
				diags.AddError(diagnostic.CodeDuplicateAttribute,
					"duplicate `from` directive on struct", dir.Pos)
				continue
			}

			sa.From = &Raw{Kind: KindFrom, Value: value, Pos: dir.Pos}

		default:
			diags.AddErrorWithSuggestions(diagnostic.CodeUnknownAttribute,
				fmt.Sprintf("unknown dto directive %q; expected `from`", key),
				dir.Pos, match.Suggest(key, []string{"from"}, 1))
		}
	}

	return sa
}

// splitDirective separates a directive body into key and value.
// Both "from store.User" and "from=store.User" are accepted.
func splitDirective(text string) (key, value string) {
	idx := strings.IndexAny(text, " \t=")
	if idx < 0 {
		return text, ""
	}

	return text[:idx], strings.TrimSpace(strings.TrimPrefix(text[idx:], "="))
}

// ParseFieldTag parses the dto tag of one field into raw annotations.
// Options are comma-separated key or key=value pairs from the closed set.
// Returns nil when the field carries no dto tag.
func ParseFieldTag(field *analyze.FieldInfo, diags *diagnostic.Diagnostics) []Raw {
	tag, ok := field.MappingTag()
	if !ok {
		return nil
	}

	var (
		raws []Raw
		seen = map[Kind]bool{}
	)

	offset := 0

	for _, opt := range strings.Split(tag, ",") {
		pos := optionPos(field, offset)
		offset += len(opt) + 1

		opt = strings.TrimSpace(opt)
		if opt == "" {
			diags.AddError(diagnostic.CodeMalformedAttribute, "empty dto option", pos)
			continue
		}

		key, value, hasValue := strings.Cut(opt, "=")

		raw, ok := parseOption(key, value, hasValue, pos, diags)
		if !ok {
			continue
		}

		if seen[raw.Kind] {
			diags.AddError(diagnostic.CodeDuplicateAttribute,
				fmt.Sprintf("duplicate `%s`", raw.Kind), pos)
			continue
		}

		seen[raw.Kind] = true
		raws = append(raws, raw)
	}

	return raws
}

// parseOption validates one option's syntactic shape.
func parseOption(key, value string, hasValue bool, pos token.Position, diags *diagnostic.Diagnostics) (Raw, bool) {
	switch key {
	case "rename":
		if strings.TrimSpace(value) == "" {
			diags.AddError(diagnostic.CodeMalformedAttribute, "`rename` cannot be empty", pos)
			return Raw{}, false
		}

		return Raw{Kind: KindRename, Value: value, Pos: pos}, true

	case "transform_fn":
		if strings.TrimSpace(value) == "" {
			diags.AddError(diagnostic.CodeMalformedAttribute,
				"`transform_fn` requires a function reference", pos)
			return Raw{}, false
		}

		return Raw{Kind: KindTransformFn, Value: value, Func: ParseFuncRef(value), Pos: pos}, true

	case "skip", "into":
		if hasValue {
			diags.AddError(diagnostic.CodeMalformedAttribute,
				fmt.Sprintf("`%s` takes no value", key), pos)
			return Raw{}, false
		}

		kind := KindSkip
		if key == "into" {
			kind = KindInto
		}

		return Raw{Kind: kind, Pos: pos}, true

	default:
		diags.AddErrorWithSuggestions(diagnostic.CodeUnknownAttribute,
			fmt.Sprintf("unknown dto option %q; expected one of: rename, transform_fn, skip, into", key),
			pos, match.Suggest(key, fieldKeys, 1))

		return Raw{}, false
	}
}

// optionPos computes the position of an option inside the field's raw tag
// literal. optOffset is the option's byte offset within the dto tag value.
// Falls back to the field position when the tag literal span is unavailable
// (e.g. schemas constructed in memory).
func optionPos(field *analyze.FieldInfo, optOffset int) token.Position {
	if !field.TagPos.IsValid() {
		return field.Pos
	}

	marker := TagKey + `:"`

	idx := strings.Index(field.RawTag, marker)
	if idx < 0 {
		return field.TagPos
	}

	pos := field.TagPos
	pos.Column += idx + len(marker) + optOffset
	pos.Offset += idx + len(marker) + optOffset

	return pos
}
