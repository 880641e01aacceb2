package cssprite

import (
	"html/template"
	"io"
)

var demoTemplate = template.Must(template.New("demo").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.CSSHref}}">
<style>
body{font-family:sans-serif;margin:2em}
figure{display:inline-block;margin:0 1em 1em 0;text-align:center}
figcaption{font:12px monospace;margin-top:.5em}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{len .Items}} classes</p>
{{range .Items}}<figure>{{.Tag}}<figcaption>.{{.Class}}</figcaption></figure>
{{end}}</body>
</html>
`))

type demoItem struct {
	Class string
	Tag   template.HTML
}

// WriteDemo writes an HTML page that shows every generated class, linking the
// stylesheet at cssHref.
func WriteDemo(w io.Writer, result *GenerateResult, cssHref string) error {
	items := make([]demoItem, 0, len(result.Classes))
	for i, class := range result.Classes {
		if i >= len(result.Tags) {
			break
		}
		// Tags are built from escaped class names
		items = append(items, demoItem{Class: class, Tag: template.HTML(result.Tags[i])}) // #nosec G203
	}

	return demoTemplate.Execute(w, struct {
		Title   string
		CSSHref string
		Items   []demoItem
	}{
		Title:   "Sprite preview",
		CSSHref: cssHref,
		Items:   items,
	})
}
