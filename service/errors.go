package service

import "errors"

// ErrTransactionFailed marks a batch write that was rolled back as a whole
var ErrTransactionFailed = errors.New("transaction failed")

// ErrNoQueryRunner is returned when a notification needs a data query but none is configured
var ErrNoQueryRunner = errors.New("no query runner configured")
