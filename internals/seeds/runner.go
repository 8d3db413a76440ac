package seeds

import (
	"log"

	events "zionhub_backend/internals/seeds/events"
)

const DefaultSeedFile = "internals/seeds/events/data_events.json"

// RunMemorySeeds fills an in-memory store with demo events and users.
func RunMemorySeeds(sink events.Sink, filePath string) {
	if filePath == "" {
		filePath = DefaultSeedFile
	}
	if _, _, err := events.SeedEventsFromJSON(sink, filePath); err != nil {
		log.Printf("[WARN] memory seeds not loaded: %v", err)
	}
}
