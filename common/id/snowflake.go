package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID.
// Node ids are 0..1023; distinct machines running pulse against the same
// log sink should use distinct ids.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a new time-ordered run id. Init must have succeeded first.
func New() int64 {
	return node.Generate().Int64()
}
