package server

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/uistate/internal/output"
	"github.com/mj1618/uistate/internal/state"
)

// BoolParam extracts a bool argument, accepting "true"/"false" strings from
// clients that stringify everything.
func BoolParam(params map[string]interface{}, key string, def bool) bool {
	switch v := params[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	default:
		return def
	}
}

// IntParam extracts an integer argument. JSON numbers arrive as float64.
func IntParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

// snapshot serializes access to the driver; the engine itself is stateless.
func (s *Server) snapshot(ctx context.Context, useVision bool) (*state.State, error) {
	s.driverMu.Lock()
	defer s.driverMu.Unlock()
	return s.engine.GetState(ctx, s.driver, useVision)
}

func (s *Server) handleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	useVision := BoolParam(request.GetArguments(), "use_vision", false)

	st, err := s.snapshot(ctx, useVision)
	if err != nil {
		s.logger.Warn("state failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := st.Text
	if st.ImageErr != nil {
		text += fmt.Sprintf("\nScreenshot unavailable: %v\n", st.ImageErr)
	}
	result := mcp.NewToolResultText(text)
	if st.Image != nil {
		result.Content = append(result.Content, mcp.ImageContent{
			Type:     "image",
			Data:     base64.StdEncoding.EncodeToString(st.Image.PNG),
			MIMEType: "image/png",
		})
	}
	return result, nil
}

func (s *Server) handleElement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := IntParam(request.GetArguments(), "number", 0)

	st, err := s.snapshot(ctx, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	el, ok := st.Tree.ByNumber(n)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no interactive element numbered %d (have %d)", n, len(st.Tree.InteractiveElements))), nil
	}

	b, err := yaml.Marshal(output.NumberedElement{Number: n, ElementNode: el})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
