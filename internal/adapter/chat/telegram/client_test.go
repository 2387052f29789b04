package telegram

import (
	"context"
	"errors"
	"net"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
)

func TestClassify_RetryableAPIErrorCodes(t *testing.T) {
	for _, code := range []int{429, 502, 503, 504} {
		err := &tgbotapi.Error{Code: code, Message: "upstream"}
		require.True(t, classify(err), "code %d should be retryable", code)
	}
}

func TestClassify_NonRetryableAPIErrorCodes(t *testing.T) {
	for _, code := range []int{400, 403, 404} {
		err := &tgbotapi.Error{Code: code, Message: "bad request"}
		require.False(t, classify(err), "code %d should not be retryable", code)
	}
}

func TestClassify_NetworkErrorIsRetryable(t *testing.T) {
	var netErr net.Error = &net.DNSError{Err: "timeout", IsTimeout: true}
	require.True(t, classify(netErr))
}

func TestClassify_UnknownErrorDefaultsRetryable(t *testing.T) {
	require.True(t, classify(errors.New("something unexpected")))
}

func TestParseChatID_InvalidIsNonRetryable(t *testing.T) {
	_, err := parseChatID("not-a-number")
	require.Error(t, err)

	res := (&Client{}).SendMessage(context.Background(), "not-a-number", "hi", "")
	require.False(t, res.Success)
	require.False(t, res.Retryable)
}

func TestParseChatID_Valid(t *testing.T) {
	id, err := parseChatID("123456789")
	require.NoError(t, err)
	require.Equal(t, int64(123456789), id)
}
