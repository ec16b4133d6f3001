package wallet

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/melodify-live/melodify-client/internal/adapter"
	"github.com/melodify-live/melodify-client/internal/ledger"
	"github.com/melodify-live/melodify-client/internal/txbuilder"
)

// Signer supplies the user identity and the sign-and-submit primitive.
// Submission failures surface verbatim; retrying a payment automatically
// risks paying twice, so only the user may retry.
//
//go:generate mockgen -source=wallet.go -destination=../mocks/signer.go -package=mocks -mock_names=Signer=MockSigner
type Signer interface {
	// Address returns the signer's ledger address
	Address() string

	// SignAndSubmit signs a descriptor and submits it, returning the
	// settled receipt
	SignAndSubmit(ctx context.Context, desc *txbuilder.TxDescriptor) (*ledger.Receipt, error)
}

// TestSigner is an in-memory signer derived deterministically from a seed
// phrase. It exists for test mode and local development; production signing
// belongs to the user's wallet.
type TestSigner struct {
	priv    ed25519.PrivateKey
	address string
	ledger  ledger.Client
	json    adapter.JSON
}

// NewTestSigner derives a keypair from the seed phrase and binds the signer
// to a ledger client for submission
func NewTestSigner(seedPhrase string, ledgerClient ledger.Client, json adapter.JSON) *TestSigner {
	seed := blake2b.Sum256([]byte(seedPhrase))
	priv := ed25519.NewKeyFromSeed(seed[:])
	pubDigest := blake2b.Sum256(priv.Public().(ed25519.PublicKey))

	return &TestSigner{
		priv:    priv,
		address: "0x" + hex.EncodeToString(pubDigest[:]),
		ledger:  ledgerClient,
		json:    json,
	}
}

func (s *TestSigner) Address() string {
	return s.address
}

func (s *TestSigner) SignAndSubmit(ctx context.Context, desc *txbuilder.TxDescriptor) (*ledger.Receipt, error) {
	bound := bindSender(desc, s.address)

	txBytes, err := ledger.EncodeDescriptor(s.json, bound)
	if err != nil {
		return nil, err
	}

	digest := blake2b.Sum256([]byte(txBytes))
	signature := ed25519.Sign(s.priv, digest[:])

	receipt, err := s.ledger.SubmitTransaction(ctx, &ledger.SignedTransaction{
		TxBytes:    txBytes,
		Signatures: []string{base64.StdEncoding.EncodeToString(signature)},
		Sender:     s.address,
	})
	if err != nil {
		return nil, fmt.Errorf("transaction submission failed: %w", err)
	}

	return receipt, nil
}

// bindSender substitutes the sender placeholder without mutating the
// builder's descriptor
func bindSender(desc *txbuilder.TxDescriptor, address string) *txbuilder.TxDescriptor {
	if desc.TransferResultTo != txbuilder.SenderPlaceholder {
		return desc
	}
	bound := *desc
	bound.TransferResultTo = address
	return &bound
}
