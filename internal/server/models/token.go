package models

import "time"

type Token struct {
	ID     int64  `json:"id"`
	Token  string `json:"token"`
	IsUsed bool   `json:"isUsed"`
}

type ElectionRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TokenBatch groups the codes generated by one request.
type TokenBatch struct {
	BatchID   string        `json:"batchId"`
	Elections []ElectionRef `json:"elections"`
	Tokens    []Token       `json:"tokens"`
	CreatedAt time.Time     `json:"createdAt"`
}
