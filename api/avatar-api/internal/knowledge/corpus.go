// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_knowledge

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/rapidaai/avatar/pkg/commons"
)

// Load reads every document under dir into one corpus string. It runs once
// at startup; the result is treated as read-only for the process lifetime.
// A missing or empty directory is not an error — the agent simply answers
// without company context.
func Load(logger commons.Logger, dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warnf("knowledge: directory %s not found, corpus is empty", dir)
			return "", nil
		}
		return "", fmt.Errorf("knowledge: read dir %s: %w", dir, err)
	}

	var corpus strings.Builder
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		var text string
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pdf":
			text, err = extractPDF(path)
		case ".txt", ".md":
			var raw []byte
			raw, err = os.ReadFile(path)
			text = string(raw)
		default:
			continue
		}
		if err != nil {
			logger.Warnf("knowledge: skipping %s: %v", path, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		corpus.WriteString(fmt.Sprintf("\nDocument: %s\n", entry.Name()))
		corpus.WriteString(text)
		corpus.WriteString("\n")
		loaded++
	}

	logger.Infof("knowledge: loaded %d documents from %s", loaded, dir)
	return corpus.String(), nil
}

func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", err
	}
	return buf.String(), nil
}
