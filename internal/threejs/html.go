package threejs

import (
	"html"
	"strings"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body { margin: 0; overflow: hidden; }
        canvas { display: block; }
    </style>
</head>
<body>
    <script type="module" src="{{.Script}}"></script>
</body>
</html>
`

// DefaultPageTitle is used when no title is configured.
const DefaultPageTitle = "Three.js Scene"

// Page returns a minimal host page loading script as a module.
func Page(title, script string) string {
	if title == "" {
		title = DefaultPageTitle
	}
	r := strings.NewReplacer(
		"{{.Title}}", html.EscapeString(title),
		"{{.Script}}", html.EscapeString(script),
	)
	return r.Replace(pageTemplate)
}
