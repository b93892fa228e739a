// Package model defines the provider-agnostic abstractions and concrete
// helpers for interacting with completion backends inside ChatMesh.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Normalize the optional card payload a backend may attach to a reply
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so the conversation engine remains decoupled from vendor SDKs. The
// engine treats the backend as an opaque capability: it requests the full
// response and stages it into the UI through the streaming writer.
package model
