package utils

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "gamey/internal/errors"
)

type sizeBody struct {
	Size int `json:"size"`
}

func TestDecodeJSONRequest(t *testing.T) {
	var dst sizeBody
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"size":4}`))
	require.NoError(t, DecodeJSONRequest(httptest.NewRecorder(), r, &dst))
	assert.Equal(t, 4, dst.Size)

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"size":4,"komi":6.5}`))
	assert.Error(t, DecodeJSONRequest(httptest.NewRecorder(), r, &dst))

	r = httptest.NewRequest("POST", "/", strings.NewReader(``))
	assert.Error(t, DecodeJSONRequest(httptest.NewRecorder(), r, &dst))
}

func TestDecodeOptionalJSONRequest(t *testing.T) {
	dst := sizeBody{Size: 7}
	r := httptest.NewRequest("POST", "/", strings.NewReader("  \n"))
	require.NoError(t, DecodeOptionalJSONRequest(httptest.NewRecorder(), r, &dst))
	assert.Equal(t, 7, dst.Size)

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"size":3}`))
	require.NoError(t, DecodeOptionalJSONRequest(httptest.NewRecorder(), r, &dst))
	assert.Equal(t, 3, dst.Size)
}

func TestReadRequestBodyRejectsOversized(t *testing.T) {
	var dst sizeBody
	body := `{"size":4,"pad":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))

	err := DecodeJSONRequest(httptest.NewRecorder(), r, &dst)
	assert.ErrorIs(t, err, errs.ErrBodyTooLarge)

	r = httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat(" ", maxBodyBytes)))
	data, err := ReadRequestBody(httptest.NewRecorder(), r)
	require.NoError(t, err)
	assert.Len(t, data, maxBodyBytes)
}

func TestCheckApiVersion(t *testing.T) {
	assert.NoError(t, CheckApiVersion("v1"))
	assert.ErrorIs(t, CheckApiVersion("v2"), errs.ErrUnsupportedVersion)
	assert.ErrorIs(t, CheckApiVersion(""), errs.ErrUnsupportedVersion)
}
