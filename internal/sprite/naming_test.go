package sprite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want Name
	}{
		{
			name: "base image",
			key:  "ok",
			want: Name{Kind: NameBase, Key: "ok", BaseKey: "ok"},
		},
		{
			name: "nested base image",
			key:  "buttons/ok",
			want: Name{Kind: NameBase, Key: "buttons/ok", BaseKey: "buttons/ok"},
		},
		{
			name: "hover state",
			key:  "buttons/ok.hover",
			want: Name{Kind: NameState, Key: "buttons/ok.hover", BaseKey: "buttons/ok", State: "hover"},
		},
		{
			name: "target state",
			key:  "ok.target",
			want: Name{Kind: NameState, Key: "ok.target", BaseKey: "ok", State: "target"},
		},
		{
			name: "state word alone has no base",
			key:  "buttons/.hover",
			want: Name{Kind: NameState, Key: "buttons/.hover", State: "hover"},
		},
		{
			name: "state word alone in root",
			key:  ".active",
			want: Name{Kind: NameState, Key: ".active", State: "active"},
		},
		{
			name: "unknown suffix",
			key:  "ok.focus",
			want: Name{Kind: NameBase, Key: "ok.focus", BaseKey: "ok.focus"},
		},
		{
			name: "suffix must follow a dot",
			key:  "mousehover",
			want: Name{Kind: NameBase, Key: "mousehover", BaseKey: "mousehover"},
		},
		{
			name: "state in directory name does not count",
			key:  "ok.hover/icon",
			want: Name{Kind: NameBase, Key: "ok.hover/icon", BaseKey: "ok.hover/icon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseName(tt.key, DefaultStates))
		})
	}
}

func TestParseName_CustomStates(t *testing.T) {
	got := ParseName("ok.focus", []string{"focus"})
	assert.Equal(t, NameState, got.Kind)
	assert.Equal(t, "ok", got.BaseKey)

	got = ParseName("ok.hover", []string{"focus"})
	assert.Equal(t, NameBase, got.Kind)
}

func TestNamer(t *testing.T) {
	tests := []struct {
		name    string
		namer   Namer
		key     string
		class   string
		prefix  string
		wrapper string
	}{
		{
			name:    "hyphen style",
			namer:   Namer{Namespace: "img", Style: StyleHyphen},
			key:     "buttons/ok",
			class:   "img-buttons-ok",
			prefix:  "img-",
			wrapper: "wrap-img",
		},
		{
			name:    "empty style defaults to hyphen",
			namer:   Namer{Namespace: "ico"},
			key:     "a",
			class:   "ico-a",
			prefix:  "ico-",
			wrapper: "wrap-ico",
		},
		{
			name:    "concat style",
			namer:   Namer{Namespace: "img", Style: StyleConcat},
			key:     "buttons/ok",
			class:   "imgbuttons-ok",
			prefix:  "img",
			wrapper: "wrap-img",
		},
		{
			name:    "slug",
			namer:   Namer{Namespace: "img", Slug: true},
			key:     "My Icons/Save File",
			class:   "img-my-icons-save-file",
			prefix:  "img-",
			wrapper: "wrap-img",
		},
		{
			name:    "whitespace becomes a hyphen",
			namer:   Namer{Namespace: "img"},
			key:     "tool bar/save  file",
			class:   "img-tool-bar-save-file",
			prefix:  "img-",
			wrapper: "wrap-img",
		},
		{
			name:    "no slug keeps the key",
			namer:   Namer{Namespace: "img"},
			key:     "Icons/Save",
			class:   "img-Icons-Save",
			prefix:  "img-",
			wrapper: "wrap-img",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.class, tt.namer.Class(tt.key))
			assert.Equal(t, tt.prefix, tt.namer.Prefix())
			assert.Equal(t, tt.wrapper, tt.namer.Wrapper())
		})
	}
}

func TestImageRecordKey(t *testing.T) {
	assert.Equal(t, "buttons/ok", ImageRecord{Rel: "buttons/ok.png"}.Key())
	assert.Equal(t, "ok.hover", ImageRecord{Rel: "ok.hover.gif"}.Key())
	assert.Equal(t, "noext", ImageRecord{Rel: "noext"}.Key())
}
