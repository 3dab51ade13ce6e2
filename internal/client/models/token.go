package models

// Token is a single voter access code.
type Token struct {
	ID     string `json:"id"`
	Token  string `json:"token"`
	IsUsed bool   `json:"isUsed"`
}

// ElectionRef names an election a token batch is valid for.
type ElectionRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TokenBatch is a set of tokens generated in one go for one or more elections.
type TokenBatch struct {
	BatchID   string        `json:"batchId"`
	Elections []ElectionRef `json:"elections"`
	Tokens    []Token       `json:"tokens"`
}

func (b TokenBatch) Clone() TokenBatch {
	if b.Elections != nil {
		b.Elections = append([]ElectionRef(nil), b.Elections...)
	}
	if b.Tokens != nil {
		b.Tokens = append([]Token(nil), b.Tokens...)
	}
	return b
}

// Unused counts tokens not yet redeemed.
func (b TokenBatch) Unused() int {
	n := 0
	for _, t := range b.Tokens {
		if !t.IsUsed {
			n++
		}
	}
	return n
}
