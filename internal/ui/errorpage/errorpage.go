// Package errorpage generates the inline HTML document shown when a page
// load fails. The document is rendered locally so a failed load never
// surfaces as an uncaught error.
package errorpage

import (
	"html/template"
	"strings"
)

// pageTemplate is the error document. Failure text is escaped by
// html/template, so engine-provided descriptions cannot inject markup.
var pageTemplate = template.Must(template.New("errorpage").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Page failed to load</title>
<style>
  body {
    font-family: system-ui, sans-serif;
    display: flex;
    align-items: center;
    justify-content: center;
    min-height: 100vh;
    margin: 0;
    background: #1e1e2e;
    color: #cdd6f4;
  }
  main { max-width: 32rem; padding: 2rem; }
  h1 { font-size: 1.4rem; }
  p.detail {
    color: #a6adc8;
    font-family: monospace;
    word-break: break-all;
  }
</style>
</head>
<body>
<main>
<h1>This page could not be loaded</h1>
{{if .URL}}<p class="detail">{{.URL}}</p>{{end}}
<p class="detail">{{.Failure}}</p>
</main>
</body>
</html>
`))

type pageData struct {
	URL     string
	Failure string
}

// Render produces the error document for a failed load. failure is the
// engine-provided description; an empty failure gets a generic message.
func Render(url, failure string) string {
	if strings.TrimSpace(failure) == "" {
		failure = "The page could not be loaded."
	}

	var b strings.Builder
	if err := pageTemplate.Execute(&b, pageData{URL: url, Failure: failure}); err != nil {
		// The template is static and the data is two strings; execution
		// cannot fail at runtime. Fall back to a minimal document anyway.
		return "<!DOCTYPE html><html><body><h1>This page could not be loaded</h1></body></html>"
	}
	return b.String()
}
