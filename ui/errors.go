package ui

import "errors"

var (
	errEmptyOverallData        = errors.New("overall_data must be non-empty")
	errMissingTransactionID    = errors.New("first record must contain transaction_id")
	errMissingItemCategory2    = errors.New("first record must contain item_category2")
	errTransactionDataRequired = errors.New("transaction data is required")
)
