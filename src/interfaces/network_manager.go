package interfaces

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for HTTP requests with retry logic.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// -----------------------------------------------------------------------------

	// Get performs a GET request to the specified URL with query parameters.
	// Returns the response body as bytes or an error.
	Get(url string, params map[string]string) ([]byte, error)

	// -----------------------------------------------------------------------------

	// GetWithHeaders performs a GET request with extra request headers
	// (authorization tokens, content negotiation).
	GetWithHeaders(url string, params map[string]string, headers map[string]string) ([]byte, error)
}
