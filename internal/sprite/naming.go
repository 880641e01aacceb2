package sprite

import (
	"path"
	"strings"

	"github.com/gosimple/slug"
)

// NameKind tells base images apart from state variants
type NameKind int

const (
	// NameBase is a regular image that gets its own rule and tag
	NameBase NameKind = iota
	// NameState is a variant ("ok.hover") of the base image with the same key
	NameState
)

// Name is the parsed form of an image key
type Name struct {
	Kind    NameKind
	Key     string // "buttons/ok.hover"
	BaseKey string // "buttons/ok"
	State   string // "hover", empty for base images
}

// ParseName applies the state naming convention to an image key.
//
// A key whose last segment ends in "." followed by one of states is a state
// variant of the image whose key is the same without that suffix:
//
//	buttons/ok        -> base
//	buttons/ok.hover  -> state "hover" of buttons/ok
//	buttons/.hover    -> state "hover" with no base image (empty BaseKey)
func ParseName(key string, states []string) Name {
	segment := path.Base(key)
	for _, state := range states {
		suffix := "." + state
		if !strings.HasSuffix(segment, suffix) {
			continue
		}
		name := Name{Kind: NameState, Key: key, State: state}
		if segment != suffix {
			name.BaseKey = strings.TrimSuffix(key, suffix)
		}
		return name
	}
	return Name{Kind: NameBase, Key: key, BaseKey: key}
}

// Namer derives CSS class names from image keys
type Namer struct {
	Namespace string
	Style     NamespaceStyle
	Slug      bool
}

// Class returns the class name for key, without the leading dot.
// buttons/ok with namespace img becomes img-buttons-ok (hyphen style)
// or imgbuttons-ok (concat style). Runs of whitespace become a single
// hyphen so the class stays one token of the class attribute.
func (n Namer) Class(key string) string {
	if n.Slug {
		key = slugKey(key)
	}
	key = strings.Join(strings.Fields(key), "-")
	return n.Prefix() + strings.ReplaceAll(key, "/", "-")
}

// Prefix is the string every generated class starts with
func (n Namer) Prefix() string {
	if n.Style == StyleConcat {
		return n.Namespace
	}
	return n.Namespace + "-"
}

// Wrapper is the container class that triggers state rules of its children
func (n Namer) Wrapper() string {
	return "wrap-" + n.Namespace
}

func slugKey(key string) string {
	segments := strings.Split(key, "/")
	out := segments[:0]
	for _, s := range segments {
		if s = slug.Make(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "/")
}

// trimExt removes the extension of the last path segment
func trimExt(rel string) string {
	return strings.TrimSuffix(rel, path.Ext(rel))
}
