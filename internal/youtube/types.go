// Package youtube proxies exercise video searches to the YouTube Data API
// and memoizes the resolved video id per query string.
package youtube

import "errors"

// ErrNoResults is returned when the search API answers with no items.
var ErrNoResults = errors.New("youtube search returned no items")

// searchResponse is the subset of the search.list response we read
type searchResponse struct {
	Items []searchItem `json:"items"`
	Error *apiError    `json:"error,omitempty"`
}

type searchItem struct {
	ID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"id"`
}

// apiError is the error envelope Google APIs return on failure
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
