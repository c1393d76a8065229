// Package model defines data structures for mcp-notes.
//
// This package contains:
//   - Note: a named text note
//   - Config: server configuration
//   - MCP: resource/prompt/tool descriptors and method payloads
//   - JSON-RPC 2.0: request/response/notification/error structures
package model
