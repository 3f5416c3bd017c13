package model

import "time"

// RawFragment is a single normalized search hit, tagged with the platform it
// was fetched for. Fragments live only for the duration of one scan.
type RawFragment struct {
	Title    string   `json:"title"`
	Snippet  string   `json:"snippet"`
	Link     string   `json:"link"`
	Platform Platform `json:"platform"`
}

// TopComment is a representative reply attached to a lead for context.
type TopComment struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// CandidateIntent mirrors the shape the classifier is asked to emit.
// Model output is untrusted; every field is validated and defaulted by the
// ranker before it reaches a response.
type CandidateIntent struct {
	Platform        string      `json:"platform"`
	AuthorName      string      `json:"author_name"`
	Content         string      `json:"content"`
	IntentScore     *float64    `json:"intent_score"`
	SourceURL       string      `json:"source_url"`
	TopComment      *TopComment `json:"top_comment,omitempty"`
	RelevanceReason string      `json:"relevance_reason,omitempty"`
}

// Intent is a validated, display-ready lead record.
type Intent struct {
	ID              string      `json:"id"`
	Platform        Platform    `json:"platform"`
	Avatar          string      `json:"avatar"`
	Author          string      `json:"author"`
	Content         string      `json:"content"`
	IntentScore     int         `json:"intentScore"`
	ScoreLevel      string      `json:"scoreLevel"`
	SourceURL       string      `json:"sourceUrl"`
	PostedAt        time.Time   `json:"postedAt"`
	TopComment      *TopComment `json:"topComment,omitempty"`
	RelevanceReason string      `json:"relevanceReason,omitempty"`
}
