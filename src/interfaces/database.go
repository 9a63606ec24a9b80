package interfaces

import "wellness-observer/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for storage operations.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// EnqueueRequest stores a new pending feature request.
	EnqueueRequest(req models.MFeatureRequest) error

	// -----------------------------------------------------------------------------

	// ListPendingRequests returns pending requests for one user, oldest first.
	ListPendingRequests(userID string) ([]models.MFeatureRequest, error)

	// -----------------------------------------------------------------------------

	// PendingUserIDs returns the set of users with pending requests.
	PendingUserIDs() ([]string, error)

	// -----------------------------------------------------------------------------

	// SaveFeature persists one assembled feature record.
	SaveFeature(row models.MFeatureRow) error

	// -----------------------------------------------------------------------------

	// ListFeatures returns the most recent feature rows, newest first.
	ListFeatures(limit int) ([]models.MFeatureRow, error)

	// -----------------------------------------------------------------------------

	// SaveLabel persists a label and links it to a feature record.
	SaveLabel(label models.MLabelRow, featureID string) error

	// -----------------------------------------------------------------------------

	// FulfillRequest marks a request fulfilled and records the feature it produced.
	FulfillRequest(requestID, featureID string) error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
