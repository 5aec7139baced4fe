/*
mcp implements a JSON-RPC 2.0 server for the Model Context Protocol,
speaking newline-delimited messages over a reader and writer pair:
https://modelcontextprotocol.io/specification/2025-06-18/basic/lifecycle
*/
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	// Packages
	tool "github.com/mutablelogic/go-weather/pkg/tool"
)

///////////////////////////////////////////////////////////////////////
// TYPES

type Server struct {
	name    string
	version string

	// Private members
	mu          sync.RWMutex       // Handler map lock
	handlers    map[string]Handler // Method handlers
	toolkit     *tool.Toolkit      // Toolkit for the server
	initialised atomic.Bool        // Handlers run concurrently
}

type Handler func(context.Context, any, json.RawMessage) (any, error)

///////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new MCP server with the given name and version
func New(name, version string, opts ...Opt) (*Server, error) {
	self := &Server{
		name:     name,
		version:  version,
		handlers: make(map[string]Handler, 10),
	}

	// Apply options
	if err := self.apply(opts...); err != nil {
		return nil, err
	}

	// Register default handlers
	self.HandlerFunc(MessageTypeInitialize, self.handleInitialize)
	self.HandlerFunc(MessageTypePing, self.handlePing)
	self.HandlerFunc(NotificationTypeInitialize, self.handleInitialized)
	self.HandlerFunc(MessageTypeListPrompts, self.handleListPrompts)
	self.HandlerFunc(MessageTypeListResources, self.handleListResources)
	self.HandlerFunc(MessageTypeListTools, self.handleListTools)
	self.HandlerFunc(MessageTypeCallTool, self.handleCallTool)

	// Return success
	return self, nil
}

// RunStdio serves requests from r, writing responses to w, until the
// context is done or r reaches end of input. Requests are handled in
// the background; all responses are flushed before returning.
func (server *Server) RunStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	var requests, writes sync.WaitGroup

	// Writer goroutine serialises response output
	writer := bufio.NewWriter(w)
	writerCh := make(chan []byte)
	writes.Add(1)
	go func() {
		defer writes.Done()
		for data := range writerCh {
			if _, err := writer.Write(data); err != nil {
				slog.Error("response write failed", "err", err)
				return
			}
			writer.Flush()
		}
	}()

	// Continue receiving input until the context is done. Wait for
	// in-flight requests before closing the writer channel so that no
	// handler sends on a closed channel.
	defer func() {
		requests.Wait()
		close(writerCh)
		writes.Wait()
	}()

	var request string
	reader := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if part, isPrefix, err := reader.ReadLine(); err != nil {
			if err == io.EOF {
				break
			}
			return err
		} else if isPrefix {
			request += string(part)
			continue
		} else {
			request += string(part)
		}
		if request = strings.TrimSpace(request); request == "" {
			continue
		}

		// Process a request in the background
		requests.Add(1)
		go func(request string) {
			defer requests.Done()
			response, err := server.processRequest(ctx, request)
			if err != nil {
				slog.Error("request failed", "err", err)
				return
			} else if response != nil {
				// Write the response and a newline
				writerCh <- append(response, '\n')
			}
		}(request)

		// Reset the request
		request = ""
	}

	// Return success
	return nil
}

// Initialised returns true once the client has sent the initialized
// notification
func (server *Server) Initialised() bool {
	return server.initialised.Load()
}

// HandlerFunc registers (or removes) a handler for a method
func (server *Server) HandlerFunc(method string, fn Handler) {
	server.mu.Lock()
	defer server.mu.Unlock()
	if fn == nil {
		delete(server.handlers, method)
	} else {
		server.handlers[method] = fn
	}
}

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (server *Server) processRequest(ctx context.Context, payload string) ([]byte, error) {
	// Decode the request. A line that is not valid JSON is answered with
	// a parse error and a null id, since no id can be recovered from it
	var request Request
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		return json.Marshal(Response{Version: RPCVersion, Err: NewError(ErrorCodeParseError, err.Error())})
	}

	// Look up and call the handler
	response := Response{Version: RPCVersion, ID: request.ID}
	if result, err := server.call(ctx, &request); err != nil {
		var target *Error
		if errors.As(err, &target) {
			response.Err = target
		} else {
			response.Err = NewError(ErrorCodeInternalError, err.Error())
		}
	} else if result == nil {
		// Notification - no response
		return nil, nil
	} else {
		response.Result = result
	}

	// Return the response
	return json.Marshal(response)
}

func (server *Server) call(ctx context.Context, request *Request) (any, error) {
	server.mu.RLock()
	defer server.mu.RUnlock()

	fn, exists := server.handlers[request.Method]
	if !exists {
		return nil, NewError(ErrorCodeMethodNotFound, "method not found", request.Method)
	}

	return fn(ctx, request.ID, request.Payload)
}

///////////////////////////////////////////////////////////////////////
// HANDLERS

func (server *Server) handleInitialize(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	response := new(ResponseInitialize)
	response.Version = ProtocolVersion
	response.ServerInfo.Name = server.name
	response.ServerInfo.Version = server.version
	response.Capabilities.Prompts = map[string]any{
		"listChanged": false,
	}
	response.Capabilities.Resources = map[string]any{
		"listChanged": false,
		"subscribe":   false,
	}
	response.Capabilities.Tools = map[string]any{
		"listChanged": false,
	}
	return response, nil
}

func (server *Server) handlePing(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	return map[string]any{}, nil
}

func (server *Server) handleInitialized(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	slog.Debug("client initialised", "server", server.name)
	server.initialised.Store(true)
	return nil, nil
}

func (server *Server) handleListPrompts(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	response := new(ResponseListPrompts)
	response.Prompts = []any{}
	return response, nil
}

func (server *Server) handleListResources(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	response := new(ResponseListResources)
	response.Resources = []any{}
	return response, nil
}

func (server *Server) handleListTools(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	response := new(ResponseListTools)
	response.Tools = []*Tool{}
	if server.toolkit == nil {
		return response, nil
	}
	for _, t := range server.toolkit.Tools() {
		jsonSchema, err := t.Schema()
		if err != nil {
			jsonSchema = nil
		}
		response.Tools = append(response.Tools, &Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: jsonSchema,
		})
	}
	return response, nil
}

func (server *Server) handleCallTool(ctx context.Context, _ any, payload json.RawMessage) (any, error) {
	if server.toolkit == nil {
		return nil, NewError(ErrorCodeMethodNotFound, "no tools configured")
	}

	var req RequestToolCall
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, NewError(ErrorCodeInvalidParameters, err.Error())
	}

	// Marshal arguments to pass to the toolkit
	var input json.RawMessage
	if req.Arguments != nil {
		data, err := json.Marshal(req.Arguments)
		if err != nil {
			return nil, NewError(ErrorCodeInvalidParameters, err.Error())
		}
		input = data
	}

	// Run the tool
	result, err := server.toolkit.Run(ctx, req.Name, input)
	if err != nil {
		// Return the error as a tool error response (not a JSON-RPC error)
		return &ResponseToolCall{
			Content: []*Content{{Type: "text", Text: err.Error()}},
			Error:   true,
		}, nil
	}

	// A string result is already formatted text; anything else is
	// marshalled to JSON
	var text string
	switch v := result.(type) {
	case string:
		text = v
	default:
		data, err := json.Marshal(result)
		if err != nil {
			return nil, NewError(ErrorCodeInternalError, err.Error())
		}
		text = string(data)
	}

	return &ResponseToolCall{
		Content: []*Content{{Type: "text", Text: text}},
	}, nil
}
