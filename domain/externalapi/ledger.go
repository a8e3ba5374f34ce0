package externalapi

// LedgerQueryClient decodes raw transactions through an external ledger
// daemon. It is used to cross-check the local decoder, never as the
// primary decode path.
type LedgerQueryClient interface {
	DecodeRawTransaction(txHex string) (*Transaction, error)
}
