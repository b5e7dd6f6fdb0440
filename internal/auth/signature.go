package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

const (
	HeaderSigner      = "X-Signer"
	HeaderTimestamp   = "X-Timestamp"
	HeaderSignature   = "X-Signature"
	HeaderAttestor    = "X-Attestor"
	HeaderAttestation = "X-Attestation"
	HeaderOTP         = "X-OTP"
)

var (
	ErrMissingSignature = errors.New("missing signature")
	ErrBadSignature     = errors.New("bad signature")
	ErrStaleTimestamp   = errors.New("stale timestamp")
)

// RequestMessage байты, которые подписывает клиент:
// METHOD\nPATH\nTIMESTAMP\nhex(sha256(body)).
func RequestMessage(method, path string, timestamp int64, body []byte) []byte {
	sum := sha256.Sum256(body)
	return []byte(strings.Join([]string{
		strings.ToUpper(method),
		path,
		strconv.FormatInt(timestamp, 10),
		hex.EncodeToString(sum[:]),
	}, "\n"))
}

// AttestationMessage сообщение аттестации маркеткапа. Привязка к released_amount
// делает аттестацию одноразовой.
func AttestationMessage(dealID string, releasedAmount uint64) []byte {
	return []byte("attest:" + dealID + ":" + strconv.FormatUint(releasedAmount, 10))
}

// Verify проверяет base58 ed25519-подпись signature ключа signer над msg.
func Verify(signer, signature string, msg []byte) error {
	if signer == "" || signature == "" {
		return ErrMissingSignature
	}
	pk, err := solana.PublicKeyFromBase58(signer)
	if err != nil {
		return errors.Wrap(ErrBadSignature, "signer is not a public key")
	}
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return errors.Wrap(ErrBadSignature, "malformed signature")
	}
	if !sig.Verify(pk, msg) {
		return ErrBadSignature
	}
	return nil
}

// Sign подписывает msg и возвращает подпись в base58.
func Sign(key solana.PrivateKey, msg []byte) (string, error) {
	sig, err := key.Sign(msg)
	if err != nil {
		return "", errors.Wrap(err, "signing message")
	}
	return sig.String(), nil
}

// SignRequest возвращает заголовки подписи для запроса.
func SignRequest(key solana.PrivateKey, method, path string, at time.Time, body []byte) (map[string]string, error) {
	ts := at.Unix()
	sig, err := Sign(key, RequestMessage(method, path, ts, body))
	if err != nil {
		return nil, err
	}
	return map[string]string{
		HeaderSigner:    key.PublicKey().String(),
		HeaderTimestamp: strconv.FormatInt(ts, 10),
		HeaderSignature: sig,
	}, nil
}

// CheckTimestamp отклоняет метки времени вне окна maxSkew от now.
func CheckTimestamp(raw string, now time.Time, maxSkew time.Duration) (int64, error) {
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrap(ErrStaleTimestamp, "malformed timestamp")
	}
	diff := now.Sub(time.Unix(ts, 0))
	if diff < 0 {
		diff = -diff
	}
	if maxSkew > 0 && diff > maxSkew {
		return 0, ErrStaleTimestamp
	}
	return ts, nil
}
