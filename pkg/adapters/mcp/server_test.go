package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/sail/pkg/adapters/memory"
	"github.com/aretw0/sail/pkg/domain"
	"github.com/aretw0/sail/pkg/dsl"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fieldSource = `a_textField({label: "N", value: "X", saveInto: "n"})`

func TestHandleEvaluate(t *testing.T) {
	s := NewServer()
	ctx := context.Background()

	t.Run("Renders", func(t *testing.T) {
		resp, err := s.handleEvaluate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
			"source": fieldSource,
			"state":  `{"n": "from state"}`,
		})
		require.NoError(t, err)

		assert.Equal(t, "rendering", resp.Phase)
		require.NotNil(t, resp.AST)
		assert.Equal(t, domain.KindTextField, resp.AST.Kind)
		assert.Contains(t, resp.HTML, `value="from state"`)
		assert.Contains(t, resp.Dump, "AST History:")
	})

	t.Run("LatestDump", func(t *testing.T) {
		resp, err := s.handleEvaluate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
			"source": fieldSource,
			"mode":   "latest",
		})
		require.NoError(t, err)
		assert.Contains(t, resp.Dump, "State:\n{}")
	})

	t.Run("EvaluationErrorIsAResult", func(t *testing.T) {
		resp, err := s.handleEvaluate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
			"source": "missing()",
		})
		require.NoError(t, err)
		assert.Equal(t, "showing_error", resp.Phase)
		require.NotNil(t, resp.Error)
		assert.Equal(t, domain.ErrorReference, resp.Error.Kind)
	})

	t.Run("BadArguments", func(t *testing.T) {
		_, err := s.handleEvaluate(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
		assert.Error(t, err)

		_, err = s.handleEvaluate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"source": "null", "state": "["})
		assert.Error(t, err)

		_, err = s.handleEvaluate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"source": "null", "mode": "tree"})
		assert.Error(t, err)
	})
}

func TestHandleInput(t *testing.T) {
	s := NewServer()

	resp, err := s.handleInput(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"source": fieldSource,
		"key":    "n",
		"value":  "typed",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"n": "typed"}, resp.State)
	assert.Contains(t, resp.HTML, `value="typed"`)

	_, err = s.handleInput(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"source": fieldSource,
		"key":    "",
	})
	assert.ErrorIs(t, err, domain.ErrUnboundField)
}

func TestResources(t *testing.T) {
	lib := memory.NewLibrary(domain.Example{ID: "login", Title: "Login", Source: "null"})
	s := NewServer(WithLibrary(lib))
	ctx := context.Background()

	contents, err := s.readFunctions(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text := contents[0].(mcp.TextResourceContents)
	assert.Equal(t, FunctionsURI, text.URI)
	assert.Equal(t, dsl.Markdown(), text.Text)

	contents, err = s.readExamples(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	var examples []domain.Example
	require.NoError(t, json.Unmarshal([]byte(contents[0].(mcp.TextResourceContents).Text), &examples))
	require.Len(t, examples, 1)
	assert.Equal(t, "login", examples[0].ID)
}

func TestHandleGetExample(t *testing.T) {
	lib := memory.NewLibrary(domain.Example{ID: "login", Source: "null"})
	s := NewServer(WithLibrary(lib))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"id": "login"}
	res, err := s.handleGetExample(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `"id":"login"`)

	req.Params.Arguments = map[string]any{"id": "nope"}
	res, err = s.handleGetExample(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
