// Package message houses the MessageStore: per-session ordered message lists.
// Ownership is one-directional: the store calls into the session registry to
// mirror message-id order, the registry never reaches back into message
// contents.
package message
