package xtts

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
)

const unkToken = "[UNK]"

// Tokenizer is a longest-match lookup over the checkpoint's vocab.json.
// The file is either a flat token-to-id map or the Hugging Face tokenizers
// layout with the map nested under model.vocab.
type Tokenizer struct {
	tokenToID map[string]int64
	sorted    []string
	unkID     int64
	startID   int64
	stopID    int64
}

func NewTokenizer(vocabPath string, startID, stopID int64) (*Tokenizer, error) {
	data, err := os.ReadFile(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocab file: %w", err)
	}

	vocab, err := parseVocab(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vocab %s: %w", vocabPath, err)
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("vocab %s contains no tokens", vocabPath)
	}

	t := &Tokenizer{
		tokenToID: vocab,
		startID:   startID,
		stopID:    stopID,
	}

	if id, ok := vocab[unkToken]; ok {
		t.unkID = id
	} else {
		t.unkID = stopID
	}

	t.sorted = make([]string, 0, len(vocab))
	for token := range vocab {
		t.sorted = append(t.sorted, token)
	}
	sort.Slice(t.sorted, func(i, j int) bool {
		return len(t.sorted[i]) > len(t.sorted[j])
	})

	return t, nil
}

func parseVocab(data []byte) (map[string]int64, error) {
	var hf struct {
		Model struct {
			Vocab map[string]int64 `json:"vocab"`
		} `json:"model"`
		AddedTokens []struct {
			ID      int64  `json:"id"`
			Content string `json:"content"`
		} `json:"added_tokens"`
	}
	if err := json.Unmarshal(data, &hf); err == nil && len(hf.Model.Vocab) > 0 {
		vocab := hf.Model.Vocab
		for _, tok := range hf.AddedTokens {
			vocab[tok.Content] = tok.ID
		}
		return vocab, nil
	}

	var flat map[string]int64
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, err
	}
	return flat, nil
}

// Encode maps text to token ids: start token, the [<lang>] tag when the
// vocabulary carries one, greedy longest-match text tokens, stop token.
// Text is lowercased first; the checkpoint was trained on lowercase input.
func (t *Tokenizer) Encode(text, lang string) []int64 {
	ids := make([]int64, 0, len(text)+3)
	ids = append(ids, t.startID)

	if tagID, ok := t.tokenToID["["+lang+"]"]; ok {
		ids = append(ids, tagID)
	}

	remaining := strings.ToLower(text)
	for len(remaining) > 0 {
		found := false
		for _, token := range t.sorted {
			if len(token) <= len(remaining) && remaining[:len(token)] == token {
				ids = append(ids, t.tokenToID[token])
				remaining = remaining[len(token):]
				found = true
				break
			}
		}
		if !found {
			r := []rune(remaining)[0]
			if !unicode.IsSpace(r) {
				ids = append(ids, t.unkID)
			}
			remaining = remaining[len(string(r)):]
		}
	}

	ids = append(ids, t.stopID)
	return ids
}

func (t *Tokenizer) VocabSize() int {
	return len(t.tokenToID)
}
