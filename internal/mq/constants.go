package mq

import "time"

// Queue names and message definitions

// immediate queue from the seed command to the web servers
// deliver message to notify the web servers that the catalog was reseeded
const (
	CatalogSeededImmediateQueue = "catalog.seeded.immediate"
)

type CatalogSeededMessage struct {
	Tags      int       `json:"tags"`
	Genres    int       `json:"genres"`
	Directors int       `json:"directors"`
	Actors    int       `json:"actors"`
	Movies    int       `json:"movies"`
	Forced    bool      `json:"forced"`
	SeededAt  time.Time `json:"seeded_at"`
}
