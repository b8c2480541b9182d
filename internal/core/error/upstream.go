package errx

import (
	"fmt"
	"net/http"
)

// WrapUpstream maps outbound provider API failures (weather, places) to the
// unified Error type. The provider name keeps log lines attributable.
func WrapUpstream(provider string, err error) *Error {
	if err == nil {
		return nil
	}
	return New(fmt.Errorf("%s: %w", provider, err), http.StatusBadGateway, UpstreamErrorMessage)
}
