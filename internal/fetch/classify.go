package fetch

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"

	"github.com/joe/fetch-examples/internal/loop"
)

// wireData mirrors loop.ExpectedResponseData with the field optional so a
// missing key can be told apart from an empty string.
type wireData struct {
	Something *string `json:"something"`
}

func statusOf(resp *resty.Response) loop.Status {
	code := resp.StatusCode()
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status(), strconv.Itoa(code)))
	if text == "" {
		text = http.StatusText(code)
	}
	return loop.Status{Code: code, Text: text}
}

// classify turns a received response into a Result according to how the
// endpoint is decoded. JSON bodies are decoded whatever the status code.
func classify(decoding loop.Decoding, status loop.Status, body []byte) loop.Result {
	switch decoding {
	case loop.DecodeJSON:
		return decodeJSON(status, body)
	default:
		return decodeText(status, body)
	}
}

func decodeText(status loop.Status, body []byte) loop.Result {
	text := string(body)
	if !status.OK() {
		return loop.Failed(loop.StatusFailure{Status: status, Body: text})
	}
	return loop.Succeeded(loop.Response{Status: status, Body: text, Data: text})
}

func decodeJSON(status loop.Status, body []byte) loop.Result {
	text := string(body)
	fail := func(err error) loop.Result {
		return loop.Failed(loop.DecodeFailure{Status: status, Body: text, Err: err})
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return fail(loop.ErrEmptyBody)
	}

	var data wireData
	if err := sonic.Unmarshal(body, &data); err != nil {
		return fail(err)
	}
	if data.Something == nil {
		return fail(fmt.Errorf("%w: something", loop.ErrMissingField))
	}

	return loop.Succeeded(loop.Response{
		Status: status,
		Body:   text,
		Data:   loop.ExpectedResponseData{Something: *data.Something},
	})
}
