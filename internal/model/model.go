// Package model holds the explorer entities shared by the repository, cache,
// service and handler layers.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Snapshot struct {
	Hash             string    `json:"hash"`
	Height           int64     `json:"height"`
	Ordinal          int64     `json:"ordinal"`
	SubHeight        int64     `json:"subHeight"`
	LastSnapshotHash *string   `json:"lastSnapshotHash"`
	Timestamp        time.Time `json:"timestamp"`
}

type Block struct {
	Hash         string    `json:"hash"`
	Height       int64     `json:"height"`
	SnapshotHash string    `json:"snapshotHash"`
	ParentHashes []string  `json:"parentHashes"`
	Timestamp    time.Time `json:"timestamp"`
}

// Transaction amounts are in the smallest unit and serialized as strings.
type Transaction struct {
	Seq             int64           `json:"-"`
	Hash            string          `json:"hash"`
	Source          string          `json:"source"`
	Destination     string          `json:"destination"`
	Amount          decimal.Decimal `json:"amount"`
	Fee             decimal.Decimal `json:"fee"`
	ParentHash      *string         `json:"parentHash"`
	BlockHash       string          `json:"blockHash"`
	SnapshotHash    string          `json:"snapshotHash"`
	SnapshotOrdinal int64           `json:"snapshotOrdinal"`
	Timestamp       time.Time       `json:"timestamp"`
}

// PageMeta describes how to fetch the neighbouring pages.
type PageMeta struct {
	Limit int    `json:"limit"`
	Next  string `json:"next,omitempty"`
	Prev  string `json:"prev,omitempty"`
}

type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}
