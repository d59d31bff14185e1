package entity

import (
	"time"

	"github.com/vesasusuri/receipts-assistant/constants"
)

// Receipt represents one uploaded document's extracted record. A receipt is
// created once at upload time and never mutated afterwards.
type Receipt struct {
	ID              int64              `json:"id"`
	Date            string             `json:"date"` // YYYY-MM-DD, empty when not found
	Total           *float64           `json:"total"`
	Currency        constants.Currency `json:"currency"`
	RawText         string             `json:"raw_text"`
	FileName        string             `json:"file_name"`
	UploadTimestamp time.Time          `json:"upload_timestamp"`
	FileType        constants.FileType `json:"file_type"`
	Items           []Item             `json:"items"`
}

// Item is one purchased line entry, owned by its parent receipt.
//
// PriceText carries the formatted price produced by extraction ("$2.50",
// "L1234") on the write path; the store normalizes it to the numeric Price
// column. Receipts read back from the store have Price set and PriceText
// empty.
type Item struct {
	Name      string             `json:"item_name"`
	Price     float64            `json:"price"`
	PriceText string             `json:"-"`
	Category  constants.Category `json:"category"`
}
