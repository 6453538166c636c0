// internal/adapter/source/http.go

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// fetchJSON issues a GET and decodes the JSON body into out.
// The caller's client carries no timeout: a hung provider is allowed to
// hang the request, there is no cancellation layer in this design.
func fetchJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status code %d", url, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
