// Package stream implements progressive delivery of a fully buffered
// completion into a target message. "Streaming" here means writing
// progressively to the UI, not receiving progressively from the network: the
// engine obtains the complete response first, then the Writer stages it into
// the placeholder chunk by chunk.
//
// Cancellation is cooperative and advisory: the Source checks its context
// before handing out each chunk, never preemptively mid-chunk. A chunk
// already produced when cancellation lands still reaches the abandoned
// message; the message is immediately marked failed afterwards, so the torn
// partial write is visibly a failed turn.
package stream
