package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	txnDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 1, 15, 10, 30, 0, 123456789, time.UTC)

	token := EncodeToken(txnDate, createdAt)
	gotDate, gotCreated, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, txnDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeTokenInvalid(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!")
	assert.Error(t, err)

	_, _, err = DecodeToken("aGVsbG8=") // valid base64, missing separator
	assert.Error(t, err)
}
