package rpcdoc

import (
	"encoding/base64"
	"html/template"
	"strings"
)

// consoleTemplate is the interactive console shell. The document is embedded
// base64-encoded so it survives the script context regardless of content;
// the external Swagger UI renderer and the request interceptor do the rest.
var consoleTemplate = template.Must(template.New("console").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}} - API Console</title>
  <link rel="stylesheet" href="{{.AssetPath}}/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script id="rpcdoc-spec" type="application/json;base64">{{.SpecB64}}</script>
<script src="{{.AssetPath}}/swagger-ui-bundle.js" charset="UTF-8"></script>
<script src="{{.AssetPath}}/swagger-ui-standalone-preset.js" charset="UTF-8"></script>
<script>
{{.Interceptor}}

window.onload = function () {
  var spec = JSON.parse(atob(document.getElementById("rpcdoc-spec").textContent.trim()));
  window.ui = SwaggerUIBundle({
    spec: spec,
    dom_id: "#swagger-ui",
    deepLinking: true,
    presets: [SwaggerUIBundle.presets.apis, SwaggerUIStandalonePreset],
    layout: "StandaloneLayout",
    requestInterceptor: rewriteRequest
  });
};
</script>
</body>
</html>
`))

var consoleErrorTemplate = template.Must(template.New("consoleError").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>API Console</title></head>
<body>
<p>The interactive console could not be prepared: {{.Message}}</p>
</body>
</html>
`))

type consoleData struct {
	Title     string
	AssetPath string

	// SpecB64 is typed template.JS because html/template treats the JSON
	// script element as a script context and would otherwise wrap the
	// payload in JS string quotes, breaking atob() in the browser. Base64
	// output is a closed alphabet, so verbatim injection is safe.
	SpecB64     template.JS
	Interceptor template.JS
}

// ConsoleHTML renders the interactive console page for the document.
// assetPath is the URL prefix the Swagger UI assets are mounted under.
func ConsoleHTML(doc *Document, assetPath string) (string, error) {
	data, err := RenderJSON(doc)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	execErr := consoleTemplate.Execute(&out, consoleData{
		Title:       doc.Info.Title,
		AssetPath:   strings.TrimSuffix(assetPath, "/"),
		SpecB64:     template.JS(base64.StdEncoding.EncodeToString(data)),
		Interceptor: template.JS(consoleInterceptorJS),
	})
	if execErr != nil {
		return "", Errorf(CodeRenderFailed, "render console: %v", execErr)
	}
	return out.String(), nil
}

// consoleErrorHTML renders the recoverable inline error page shown when
// the document could not be embedded.
func consoleErrorHTML(message string) string {
	var out strings.Builder
	if err := consoleErrorTemplate.Execute(&out, struct{ Message string }{Message: message}); err != nil {
		return "<p>The interactive console could not be prepared.</p>"
	}
	return out.String()
}
