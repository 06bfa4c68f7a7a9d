package models

import (
	"strconv"
	"time"
)

// Transaction is one wallet transaction as returned by an explorer txlist
// API (Etherscan and Polygonscan share the shape). All fields arrive
// string-encoded.
type Transaction struct {
	BlockNumber string `json:"blockNumber"`
	TimeStamp   string `json:"timeStamp"`
	Hash        string `json:"hash"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	Gas         string `json:"gas"`
	GasPrice    string `json:"gasPrice"`
	IsError     string `json:"isError"`
}

// Time parses the unix-second timestamp. The zero time is returned for a
// malformed value.
func (t Transaction) Time() time.Time {
	secs, err := strconv.ParseInt(t.TimeStamp, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0).UTC()
}
