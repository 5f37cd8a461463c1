package req

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friendlink/internal/pkg/errs"
)

type input struct {
	Name string `json:"name"`
}

func TestBindJSON(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		body        string
		wantCode    int
	}{
		{"valid", "application/json", `{"name":"alice"}`, 0},
		{"wrongContentType", "text/plain", `{"name":"alice"}`, errs.ErrUnsupportedMediaType},
		{"malformed", "application/json", `{"name":`, errs.ErrInvalidJSONFormat},
		{"unknownField", "application/json", `{"name":"alice","extra":1}`, errs.ErrInvalidJSONFormat},
		{"trailingData", "application/json", `{"name":"alice"}{"name":"bob"}`, errs.ErrExtraContentInBody},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
			r.Header.Set("Content-Type", tc.contentType)

			var dst input
			customErr := BindJSON(r, &dst)

			if tc.wantCode == 0 {
				require.Nil(t, customErr)
				assert.Equal(t, "alice", dst.Name)
			} else {
				require.NotNil(t, customErr)
				assert.Equal(t, tc.wantCode, customErr.Code)
			}
		})
	}
}

func TestBindJSONIfPresentSkipsEmptyBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", nil)

	var dst input
	require.Nil(t, BindJSONIfPresent(r, &dst))
	assert.Empty(t, dst.Name)
}
