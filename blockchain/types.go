package blockchain

// Transaction is a transfer of some amount between two addresses. It has no
// identity of its own beyond its position inside a block, and is never
// modified once embedded in one.
type Transaction struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
}

// Block is an immutable record of the transactions minted together, plus the
// linkage metadata tying it to its predecessor. PreviousHash is empty only on
// the genesis block.
type Block struct {
	Index        int64         `json:"index"`
	Timestamp    int64         `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
	Proof        int64         `json:"proof"`
	PreviousHash string        `json:"previous_hash"`
}
