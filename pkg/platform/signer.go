package platform

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
)

// Signer computes the entry signature sent as "h".
type Signer interface {
	Sign(contestantID uint64, entryID, tag, campaignKey string) string
}

// SignatureInput is the string the signature is computed over.
func SignatureInput(
	contestantID uint64, entryID, tag, campaignKey string,
) string {
	return "-" + strconv.FormatUint(contestantID, 10) +
		"-" + entryID + "-" + tag + "-" + campaignKey
}

// MD5Signer signs with the lowercase hex MD5 digest of
// SignatureInput.
type MD5Signer struct{}

// Sign implements Signer.
func (MD5Signer) Sign(
	contestantID uint64, entryID, tag, campaignKey string,
) string {
	sum := md5.Sum([]byte(
		SignatureInput(contestantID, entryID, tag, campaignKey),
	))
	return hex.EncodeToString(sum[:])
}
