/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package item

import (
	"io"

	"dirpx.dev/dxcap/dxcore/errors"
	"dirpx.dev/dxcap/dxcore/model"
)

// Output formats understood by NewSink.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// NewSink returns the writer-backed sink for format.
func NewSink(format string, w io.Writer) (Sink, error) {
	switch format {
	case FormatText:
		return NewTextSink(w), nil
	case FormatJSON:
		return NewJSONSink(w), nil
	case FormatYAML:
		return NewYAMLSink(w), nil
	default:
		return nil, &errors.ParseError{Type: "Format", Value: format, Reason: "want text, json or yaml"}
	}
}

// Sink receives the records produced by Traverse, one call per item, from
// the traversing goroutine.
type Sink interface {
	Emit(r Record) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(r Record) error

// Emit calls f(r).
func (f SinkFunc) Emit(r Record) error {
	return f(r)
}

// Collector keeps every record in memory.
type Collector struct {
	Records []Record
}

// Emit appends r.
func (c *Collector) Emit(r Record) error {
	c.Records = append(c.Records, r)
	return nil
}

// Identities returns the identities of the collected records in emission
// order.
func (c *Collector) Identities() []string {
	out := make([]string, len(c.Records))
	for i, r := range c.Records {
		out[i] = r.Identity
	}
	return out
}

// TextSink writes each record as its Text block.
type TextSink struct {
	w io.Writer
}

// NewTextSink returns a TextSink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Emit implements Sink.
func (s *TextSink) Emit(r Record) error {
	_, err := io.WriteString(s.w, r.Text())
	return err
}

// JSONSink writes each record as one JSON object per line.
type JSONSink struct {
	w io.Writer
}

// NewJSONSink returns a JSONSink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w}
}

// Emit implements Sink.
func (s *JSONSink) Emit(r Record) error {
	data, err := model.ToJSON(&r)
	if err != nil {
		return err
	}
	_, err = s.w.Write(append(data, '\n'))
	return err
}

// YAMLSink writes each record as a YAML document, separated by "---".
type YAMLSink struct {
	w       io.Writer
	started bool
}

// NewYAMLSink returns a YAMLSink writing to w.
func NewYAMLSink(w io.Writer) *YAMLSink {
	return &YAMLSink{w: w}
}

// Emit implements Sink.
func (s *YAMLSink) Emit(r Record) error {
	data, err := model.ToYAML(&r)
	if err != nil {
		return err
	}
	if s.started {
		if _, err := io.WriteString(s.w, "---\n"); err != nil {
			return err
		}
	}
	s.started = true
	_, err = s.w.Write(data)
	return err
}
