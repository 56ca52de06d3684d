package resources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"
)

const (
	// WidgetURI identifies the events widget resource.
	WidgetURI = "ui://widget/sf-events.html"
	// WidgetMIMEType is the MIME type widget-capable clients expect.
	WidgetMIMEType = "text/html+skybridge"
	// WidgetTitle is the display name for the widget.
	WidgetTitle = "SF Events"

	defaultWidgetDir = "web/dist"
)

// WidgetResources serves the prebuilt events widget markup. The bundle is
// loaded once; a missing bundle degrades to a placeholder page instead of
// failing the resource read.
type WidgetResources struct {
	distDir string

	once     sync.Once
	markup   string
	fallback bool
}

// NewWidgetResources creates a widget resource handler. distDir is the
// directory holding component.js and component.css from the web build.
func NewWidgetResources(distDir string) *WidgetResources {
	if distDir == "" {
		distDir = defaultWidgetDir
	}
	return &WidgetResources{distDir: distDir}
}

// WidgetResource returns the MCP resource definition for the widget.
func (r *WidgetResources) WidgetResource() mcp.Resource {
	return mcp.NewResource(
		WidgetURI,
		WidgetTitle,
		mcp.WithResourceDescription("SF Recreation & Parks Events widget markup"),
		mcp.WithMIMEType(WidgetMIMEType),
	)
}

// WidgetReadHandler returns the read handler for the widget resource.
func (r *WidgetResources) WidgetReadHandler() func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		markup := r.Markup()

		responseURI := WidgetURI
		if request.Params.URI != "" {
			responseURI = request.Params.URI
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      responseURI,
				MIMEType: WidgetMIMEType,
				Text:     markup,
			},
		}, nil
	}
}

// Markup returns the widget HTML, loading the bundle on first use.
func (r *WidgetResources) Markup() string {
	r.once.Do(r.load)
	return r.markup
}

// UsingFallback reports whether the placeholder page is being served because
// the widget bundle was missing.
func (r *WidgetResources) UsingFallback() bool {
	r.once.Do(r.load)
	return r.fallback
}

func (r *WidgetResources) load() {
	componentPath := filepath.Join(r.distDir, "component.js")
	cssPath := filepath.Join(r.distDir, "component.css")

	component, err := os.ReadFile(componentPath)
	if err != nil {
		log.Warn().Err(err).Str("path", componentPath).Msg("Widget bundle missing; using fallback markup")
		r.markup = fallbackWidgetHTML
		r.fallback = true
		return
	}

	// CSS is optional; the component carries its own critical styles.
	css, err := os.ReadFile(cssPath)
	if err != nil {
		css = nil
	}

	r.markup = fmt.Sprintf(widgetShell, string(css), string(component))
}

const widgetShell = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
        }
        %s
    </style>
</head>
<body>
    <div id="root"></div>
    <script type="module">
        %s
    </script>
</body>
</html>
`

const fallbackWidgetHTML = `<!DOCTYPE html>
<html><head><meta charset="UTF-8" />
<style>body { font-family: sans-serif; padding: 1rem; }</style>
</head><body>
<h2>SF Events Widget</h2>
<p>The interactive widget is unavailable because the build output is missing.</p>
</body></html>
`
