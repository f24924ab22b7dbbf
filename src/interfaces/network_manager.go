package interfaces

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for outbound HTTP GET requests.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// -----------------------------------------------------------------------------

	// Get performs a single GET request to the specified URL with query
	// parameters and returns the response body, or an error on transport
	// failure or non-success status. No retries: the pipeline either gets the
	// payload within one bounded wait or the whole invocation fails.
	Get(url string, params map[string]string) ([]byte, error)
}
