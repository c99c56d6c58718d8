package config

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// InitNeo4j creates the Neo4j driver described by cfg. The driver connects
// lazily; callers verify connectivity themselves.
func InitNeo4j(cfg Storage) (neo4j.DriverWithContext, error) {
	return neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
}
