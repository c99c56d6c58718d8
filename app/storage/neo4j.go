package storage

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4j keeps each slot as a (:Slot {key, value}) node.
type Neo4j struct {
	driver neo4j.DriverWithContext
}

// NewNeo4j creates a new Neo4j backend on top of an open driver.
func NewNeo4j(driver neo4j.DriverWithContext) *Neo4j {
	return &Neo4j{driver: driver}
}

// Get reads the value of the slot node with the given key.
func (n *Neo4j) Get(ctx context.Context, key string) (string, bool, error) {
	session := n.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (s:Slot {key: $key}) RETURN s.value AS value",
			map[string]any{"key": key},
		)
		if err != nil {
			return nil, err
		}

		if res.Next(ctx) {
			value, _ := res.Record().Get("value")
			return value, nil
		}
		return nil, res.Err()
	})
	if err != nil {
		return "", false, fmt.Errorf("neo4j get %s: %w", key, err)
	}

	value, ok := result.(string)
	if !ok {
		return "", false, nil
	}
	return value, true, nil
}

// Set creates or overwrites the slot node.
func (n *Neo4j) Set(ctx context.Context, key, value string) error {
	session := n.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"MERGE (s:Slot {key: $key}) SET s.value = $value",
			map[string]any{
				"key":   key,
				"value": value,
			},
		)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("neo4j set %s: %w", key, err)
	}
	return nil
}

// Remove deletes the slot node and any relationships it has.
func (n *Neo4j) Remove(ctx context.Context, key string) error {
	session := n.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"MATCH (s:Slot {key: $key}) DETACH DELETE s",
			map[string]any{"key": key},
		)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("neo4j remove %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying driver.
func (n *Neo4j) Close(ctx context.Context) error {
	return n.driver.Close(ctx)
}
