package models

// RecipientDetail is one output of a summarized transaction, in the node's
// original output order.
type RecipientDetail struct {
	Value   float64 `json:"value"`
	Address string  `json:"address"`
}

// TransactionSummary is the reduced view of a raw transaction: total value
// moved, the implied fee, and the per-recipient breakdown. The fee is the
// smallest output by policy (assumed to be the change/fee output); for a
// single-output transaction that makes fee equal the whole value and
// TotalReceived zero.
type TransactionSummary struct {
	TxID             string            `json:"txid"`
	Hash             string            `json:"hash"`
	Time             int64             `json:"time"`
	Confirmations    uint64            `json:"confirmations"`
	TransactionValue float64           `json:"transaction_value"`
	TotalReceived    float64           `json:"total_received"`
	TransactionFee   float64           `json:"transaction_fee"`
	RecipientDetails []RecipientDetail `json:"recipient_details"`
}
