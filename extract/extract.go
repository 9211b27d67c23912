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

package extract

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/docsight/docsight/core"
	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
)

// Result is the extracted plain text of one document.
type Result struct {
	Name string
	Text string
}

// Extract converts the given documents to plain text. PDF documents are
// parsed page by page and joined with blank lines; everything else is
// treated as UTF-8 text. A failure on any document aborts the whole
// batch.
func Extract(ctx context.Context, documents []core.Document) ([]Result, error) {
	if len(documents) == 0 {
		return nil, core.ErrNoDocuments
	}

	results := make([]Result, 0, len(documents))
	for _, doc := range documents {
		text, err := extractOne(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrExtraction, doc.Name, err)
		}
		results = append(results, Result{Name: doc.Name, Text: text})
	}
	return results, nil
}

func extractOne(ctx context.Context, doc core.Document) (string, error) {
	var loaded []schema.Document
	var err error

	switch strings.ToLower(filepath.Ext(doc.Name)) {
	case ".pdf":
		reader := bytes.NewReader(doc.Data)
		loaded, err = documentloaders.NewPDF(reader, int64(len(doc.Data))).Load(ctx)
	default:
		loaded, err = documentloaders.NewText(bytes.NewReader(doc.Data)).Load(ctx)
	}
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(loaded))
	for _, d := range loaded {
		if content := strings.TrimSpace(d.PageContent); content != "" {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}
