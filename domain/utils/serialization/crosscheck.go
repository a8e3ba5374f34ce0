package serialization

import (
	"github.com/pkg/errors"
	"github.com/spacechains/covchain/domain/externalapi"
	"github.com/spacechains/covchain/domain/ruleerrors"
)

// CrossCheck decodes txHex locally and through the ledger daemon behind
// client, and fails with ErrDecodingMismatch if the two disagree.
func CrossCheck(client externalapi.LedgerQueryClient, txHex string) error {
	local, err := DecodeTransaction(txHex)
	if err != nil {
		return err
	}

	remote, err := client.DecodeRawTransaction(txHex)
	if err != nil {
		return errors.Wrap(err, "ledger daemon failed to decode transaction")
	}

	if !local.Equal(remote) {
		return ruleerrors.Errorf(ruleerrors.ErrDecodingMismatch,
			"transaction %s decodes differently through the ledger daemon (%s)", local.ID, remote.ID)
	}
	return nil
}
