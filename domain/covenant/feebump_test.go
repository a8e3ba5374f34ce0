package covenant

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/spacechains/covchain/domain/ruleerrors"
	"github.com/spacechains/covchain/domain/utils/serialization"
)

var testAuxHash = strings.Repeat("ab", 32)

const (
	testFundingTxHex = "0200000001111111111111111111111111111111111111111111111111111111111111111100000000" +
		"00ffffffff0150c30000000000001600142222222222222222222222222222222222222222" +
		"00000000"

	expectedCompanionHex = "020000000157038b48b39403ef8b9b327db8e12ed64c12d41aab11a789f4e7aa25277ee5030100" +
		"0000040300b28b00000000012003000000000000226a20abababababababababababababababab" +
		"abababababababababababababababab00000000"
	expectedCompanionID = "6128e95872c99c677a5cb59f000d15a46790505dc0769ebc1a75f6aad0c980f5"

	expectedMergedHex = "0200000002111111111111111111111111111111111111111111111111111111111111111100000000" +
		"00ffffffff57038b48b39403ef8b9b327db8e12ed64c12d41aab11a789f4e7aa25277ee50301000000" +
		"040300b28b000000000250c3000000000000160014222222222222222222222222222222222222222220" +
		"03000000000000226a20abababababababababababababababababababababababababababababababab" +
		"00000000"
)

func TestBuildFeeBumpCompanion(t *testing.T) {
	companion, err := BuildFeeBumpCompanion(mustHash(t, secondStepID), FeeBumpOutputIndex,
		DefaultDustValue, testAuxHash)
	if err != nil {
		t.Fatalf("BuildFeeBumpCompanion: %+v", err)
	}

	companionHex, err := serialization.EncodeTransaction(companion)
	if err != nil {
		t.Fatalf("EncodeTransaction: %s", err)
	}
	if companionHex != expectedCompanionHex {
		t.Fatalf("unexpected companion\n got: %s\nwant: %s", companionHex, expectedCompanionHex)
	}
	if companion.ID.String() != expectedCompanionID {
		t.Fatalf("unexpected companion ID %s", companion.ID)
	}
}

func TestBuildFeeBumpCompanionMalformedHash(t *testing.T) {
	chainID := mustHash(t, secondStepID)
	for _, auxHash := range []string{"abc", "zz", strings.Repeat("00", 76)} {
		_, err := BuildFeeBumpCompanion(chainID, FeeBumpOutputIndex, DefaultDustValue, auxHash)
		if !errors.Is(err, ruleerrors.ErrMalformedInput) {
			t.Errorf("aux hash %q: expected ErrMalformedInput, got %v", auxHash, err)
		}
	}
}

func TestMergeFeeBumpCompanion(t *testing.T) {
	companion, err := BuildFeeBumpCompanion(mustHash(t, secondStepID), FeeBumpOutputIndex,
		DefaultDustValue, testAuxHash)
	if err != nil {
		t.Fatalf("BuildFeeBumpCompanion: %+v", err)
	}
	companionCopy := companion.Clone()

	merged, err := MergeFeeBumpCompanion(testFundingTxHex, companion)
	if err != nil {
		t.Fatalf("MergeFeeBumpCompanion: %+v", err)
	}
	if merged != expectedMergedHex {
		t.Fatalf("unexpected merged transaction\n got: %s\nwant: %s", merged, expectedMergedHex)
	}
	if !companion.Equal(companionCopy) {
		t.Fatalf("MergeFeeBumpCompanion modified the companion")
	}

	_, err = MergeFeeBumpCompanion(testFundingTxHex[:20], companion)
	if !errors.Is(err, ruleerrors.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput for a truncated transaction, got %v", err)
	}
}

func TestNextChainTransactions(t *testing.T) {
	engine := newTestEngine(t, nil)

	chainTxHex, mergedTxHex, err := engine.NextChainTransactions(mustHash(t, firstStepID),
		testAuxHash, testFundingTxHex)
	if err != nil {
		t.Fatalf("NextChainTransactions: %+v", err)
	}

	chainTx, err := serialization.DecodeTransaction(chainTxHex)
	if err != nil {
		t.Fatalf("DecodeTransaction: %+v", err)
	}
	if chainTx.ID.String() != secondStepID {
		t.Fatalf("unexpected chain transaction %s", chainTx.ID)
	}
	if mergedTxHex != expectedMergedHex {
		t.Fatalf("unexpected merged transaction\n got: %s\nwant: %s", mergedTxHex, expectedMergedHex)
	}

	_, _, err = engine.NextChainTransactions(mustHash(t, firstStepID), "xyz", testFundingTxHex)
	if !errors.Is(err, ruleerrors.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}
