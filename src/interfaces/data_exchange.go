package interfaces

import "wellness-observer/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defines the interface for sharing data with external
// systems (Server/Push).
// -----------------------------------------------------------------------------

type IDataExchanger interface {

	// -----------------------------------------------------------------------------

	// Broadcast pushes a new snapshot to external listeners.
	Broadcast(snapshot *models.MLatestData)

	// -----------------------------------------------------------------------------

	// Start the server
	Start() error

	// -----------------------------------------------------------------------------

	// Stop the server gracefully
	Stop() error
}
