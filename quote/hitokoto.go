// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quote

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Hitokoto is the record returned by the Hitokoto API. The HTTP endpoint
// passes the upstream body through untouched; this type is only used to
// render a quote as text.
type Hitokoto struct {
	ID         int     `json:"id"`
	UUID       string  `json:"uuid"`
	Hitokoto   string  `json:"hitokoto"`
	Type       string  `json:"type"`
	From       string  `json:"from"`
	FromWho    *string `json:"from_who"`
	Creator    string  `json:"creator"`
	CreatorUID int     `json:"creator_uid"`
	Reviewer   int     `json:"reviewer"`
	CommitFrom string  `json:"commit_from"`
	CreatedAt  string  `json:"created_at"`
	Length     int     `json:"length"`
}

// Parse decodes an upstream body.
func Parse(raw []byte) (*Hitokoto, error) {
	var h Hitokoto
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("failed to decode hitokoto: %w", err)
	}
	return &h, nil
}

// String renders the quote with its attribution, e.g.
// "「…」 —— 鲁迅《呐喊》".
func (h *Hitokoto) String() string {
	var b strings.Builder
	b.WriteString("「")
	b.WriteString(h.Hitokoto)
	b.WriteString("」")

	who := ""
	if h.FromWho != nil {
		who = *h.FromWho
	}
	if who != "" || h.From != "" {
		b.WriteString(" —— ")
		b.WriteString(who)
		if h.From != "" {
			b.WriteString("《" + h.From + "》")
		}
	}
	return b.String()
}
