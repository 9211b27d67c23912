// Copyright 2026 The docsight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package chunk

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/docsight/docsight/core"
	"github.com/tmc/langchaingo/textsplitter"
)

// separators is the boundary hierarchy, largest first: paragraph, line,
// sentence, word. A chunk end is pulled back to the last occurrence of the
// highest-ranked separator found in its tail region.
var separators = []string{"\n\n", "\n", ". ", " "}

// Chunker splits text into overlapping segments of bounded size.
//
// Each segment holds at most Size characters. Consecutive segments share
// exactly Overlap characters: a segment starts Overlap characters before its
// predecessor's end, preserving context across the boundary. Segment ends
// prefer the largest natural boundary available in the tail of the window, so
// splits land after paragraphs and sentences whenever possible.
type Chunker struct {
	size    int
	overlap int
}

var _ textsplitter.TextSplitter = (*Chunker)(nil)

// New creates a Chunker. Preconditions: size > 0 and 0 <= overlap < size.
func New(size, overlap int) (*Chunker, error) {
	if err := core.ValidateChunking(size, overlap); err != nil {
		return nil, err
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the maximum chunk length in characters.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the exact overlap length in characters.
func (c *Chunker) Overlap() int { return c.overlap }

// SplitText splits text into overlapping segments. Size and overlap
// count characters, not bytes, so multibyte runes are never severed.
// Empty input yields an empty slice, not an error.
func (c *Chunker) SplitText(text string) ([]string, error) {
	if text == "" {
		return []string{}, nil
	}
	runes := []rune(text)
	if len(runes) <= c.size {
		return []string{text}, nil
	}

	var segments []string
	start := 0
	for {
		end := start + c.size
		if end >= len(runes) {
			segments = append(segments, string(runes[start:]))
			break
		}
		end = c.naturalEnd(runes, start, end)
		segments = append(segments, string(runes[start:end]))
		start = end - c.overlap
	}
	return segments, nil
}

// Split splits text into domain chunks with deterministic content IDs and
// creation-order positions.
func (c *Chunker) Split(text string) ([]core.Chunk, error) {
	segments, err := c.SplitText(text)
	if err != nil {
		return nil, err
	}
	chunks := make([]core.Chunk, len(segments))
	for i, segment := range segments {
		chunks[i] = core.Chunk{
			Id:       core.IDFromContent(fmt.Sprintf("%d:%s", i, segment)),
			Position: i,
			Text:     segment,
		}
	}
	return chunks, nil
}

// naturalEnd pulls end back to the last occurrence of the highest-ranked
// separator inside the window's tail region. Offsets are rune indexes.
// The returned end always leaves room for forward progress:
// end - overlap > start.
func (c *Chunker) naturalEnd(runes []rune, start, end int) int {
	// The tail region is the last fifth of the window, clamped so the next
	// start still advances past the current one.
	tail := c.size / 5
	if max := c.size - c.overlap - 1; tail > max {
		tail = max
	}
	if tail <= 0 {
		return end
	}
	searchFrom := end - tail

	window := string(runes[searchFrom:end])
	for _, sep := range separators {
		if i := strings.LastIndex(window, sep); i >= 0 {
			// LastIndex reports bytes; map back to a rune offset.
			cut := searchFrom + utf8.RuneCountInString(window[:i]) + len(sep)
			if cut-c.overlap > start {
				return cut
			}
		}
	}
	return end
}
