package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	infoMIMEType       = "application/json"
	serverInfoResource = "info://server"
)

type ServerCapabilities struct {
	Tools     bool `json:"tools"`
	Resources bool `json:"resources"`
	Prompts   bool `json:"prompts"`
}

type ServerInfo struct {
	Name         string             `json:"name"`
	Version      string             `json:"version,omitempty"`
	Capabilities ServerCapabilities `json:"capabilities"`
	Transport    string             `json:"transport,omitempty"`
}

// InfoResources exposes server metadata as a JSON resource.
type InfoResources struct {
	info ServerInfo

	infoOnce sync.Once
	infoJSON string
	infoErr  error
}

// NewInfoResource creates a server info resource handler.
func NewInfoResource(info ServerInfo) *InfoResources {
	return &InfoResources{info: info}
}

func (r *InfoResources) InfoResource() mcp.Resource {
	return mcp.NewResource(
		serverInfoResource,
		"Server Info",
		mcp.WithResourceDescription("MCP server metadata and capabilities"),
		mcp.WithMIMEType(infoMIMEType),
	)
}

func (r *InfoResources) InfoReadHandler() func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		content, err := r.loadInfo()
		if err != nil {
			return nil, err
		}

		responseURI := serverInfoResource
		if request.Params.URI != "" {
			responseURI = request.Params.URI
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      responseURI,
				MIMEType: infoMIMEType,
				Text:     content,
			},
		}, nil
	}
}

func (r *InfoResources) loadInfo() (string, error) {
	r.infoOnce.Do(func() {
		encoded, err := json.MarshalIndent(r.info, "", "  ")
		if err != nil {
			r.infoErr = fmt.Errorf("marshal server info: %w", err)
			return
		}
		r.infoJSON = string(encoded)
	})
	return r.infoJSON, r.infoErr
}
