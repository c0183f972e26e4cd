package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"shipdate-policy-service/internal/domain"
	"shipdate-policy-service/internal/ports"
)

type matrixResponse struct {
	Status               string   `json:"status"`
	DestinationAddresses []string `json:"destination_addresses"`
	Rows                 []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

// fetchElement retrieves the single origin->destination matrix element
// and validates the answer: HTTP status, top-level status, element
// status, numeric miles, and city-level granularity of the resolved
// destination address.
func (g *GoogleProvider) fetchElement(
	ctx context.Context,
	destination string,
	apiKey string,
) (domain.DistanceResult, error) {
	endpoint := g.baseURL + "/maps/api/distancematrix/json"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("origins", g.origin)
		q.Set("destinations", destination)
		q.Set("units", "imperial")
		q.Set("key", apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) {
			return domain.DistanceResult{}, &ports.ServiceStatusError{HTTPStatus: he.Code}
		}
		return domain.DistanceResult{}, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.DistanceResult{}, &ports.ServiceStatusError{HTTPStatus: resp.StatusCode}
	}

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return domain.DistanceResult{}, fmt.Errorf("decode matrix response: %w", err)
	}

	if mr.Status != "OK" {
		return domain.DistanceResult{}, &ports.ServiceStatusError{
			HTTPStatus: resp.StatusCode,
			Status:     mr.Status,
		}
	}

	if len(mr.Rows) == 0 || len(mr.Rows[0].Elements) == 0 {
		return domain.DistanceResult{}, fmt.Errorf("matrix response has no elements for %q", destination)
	}

	element := mr.Rows[0].Elements[0]
	if element.Status != "OK" {
		return domain.DistanceResult{}, &ports.ServiceStatusError{
			HTTPStatus:    resp.StatusCode,
			Status:        mr.Status,
			ElementStatus: element.Status,
		}
	}

	miles, err := parseMiles(element.Distance.Text)
	if err != nil {
		return domain.DistanceResult{}, fmt.Errorf("parse distance %q: %w", element.Distance.Text, err)
	}

	var resolved string
	if len(mr.DestinationAddresses) > 0 {
		resolved = mr.DestinationAddresses[0]
	}

	// A resolved address with fewer than two commas is missing
	// city-level granularity: report no distance rather than a distance
	// to the wrong place.
	if strings.Count(resolved, ",") < 2 {
		return domain.DistanceResult{
			ResolvedAddress: resolved,
			Note:            domain.NoteNoValidCity,
		}, nil
	}

	return domain.ResolvedMiles(miles, resolved), nil
}

// parseMiles converts the service's formatted imperial distance text
// (e.g. "1,234.5 mi") to a number.
func parseMiles(text string) (float64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimSuffix(s, " mi")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, errors.New("empty distance text")
	}
	return strconv.ParseFloat(s, 64)
}
