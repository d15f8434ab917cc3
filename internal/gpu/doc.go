// Package gpu enumerates display adapters, probes their video memory with
// vendor tools, and derives the encoder codec and whisper model tier the
// rest of the pipeline consumes as a read-only capability snapshot.
package gpu
