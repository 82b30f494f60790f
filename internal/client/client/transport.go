package client

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/trowebseed/internal/common"
)

// authTransport sets the bearer header on every request and turns
// authorization rejections into common.ErrConfiguration.
type authTransport struct {
	apiKey string
	base   http.RoundTripper
}

func (t *authTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set(common.AuthorizationHeaderName, common.BearerToken(t.apiKey))

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(r)
	if err != nil {
		return nil, err
	}

	// machinebox/graphql ignores the status once the body decodes, so
	// rejections are caught here.
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s: %s", common.ErrConfiguration, resp.Status, strings.TrimSpace(string(b)))
	}

	return resp, nil
}
