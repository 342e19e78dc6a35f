package models

import "time"

// RawArticle is a harvested article before it is written to the corpus.
type RawArticle struct {
	Country    string   `json:"country"`
	Language   string   `json:"language"`
	Title      string   `json:"title"`
	Link       string   `json:"link"`
	PubDate    string   `json:"pubDate"`
	SourceID   string   `json:"source_id"`
	Categories []string `json:"category"`
	Content    string   `json:"content"`
}

// Analysis is the per-article result of classification and extraction.
type Analysis struct {
	File           string              `json:"file"`
	Title          string              `json:"title"`
	Category       string              `json:"category"`
	CategoryReason string              `json:"category_reason"`
	CategoryScore  int                 `json:"category_score"`
	CategoryHits   map[string][]string `json:"category_hits"`
	TopWords       []string            `json:"most_frequent_words"`
	Names          []string            `json:"entities"`
	Places         []string            `json:"gpe"`
	Dates          []string            `json:"dates"`
	Language       string              `json:"language,omitempty"`
}

// TaggedNews is the analysis of a streamed article as published by the worker.
type TaggedNews struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Analysis
}
