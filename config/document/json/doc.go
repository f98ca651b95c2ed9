// Package json provides a streaming JSON document driver for the config package.
//
// The driver pulls tokens from a github.com/goccy/go-json Decoder and decodes
// each top-level value directly from the stream when its field is dispatched.
// Values of unknown keys are skipped as raw messages. Numbers decoded into
// interface values keep their text as json.Number.
//
// Object separators are checked while streaming. Documents built with NewBytes
// are also validated as a whole before the first key is read, so syntax errors
// inside skipped values are caught too.
//
// Usage:
//
//	doc := json.NewDocument(os.Stdin)
//	err := config.Init(doc)
package json
