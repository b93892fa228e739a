// Package session houses the SessionRegistry: the single owner of session
// metadata, the ordered session list and the active-session pointer. The
// Session struct itself lives in the core package to centralize domain
// contracts; only the registry's bookkeeping lives here.
//
// The registry never reaches into message contents. Cross-store consistency
// (message-id mirroring) is maintained exclusively through the message
// store's calls into AppendMessageID / ReplaceMessageIDs.
package session
