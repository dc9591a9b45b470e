package uid

import "github.com/bwmarrin/snowflake"

// Snowflake generates time-sortable 64-bit identifiers suitable for primary keys.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake builds a generator for the given node number. Node numbers
// must be unique per running instance within a deployment.
func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: n}, nil
}

// Generate returns the next identifier.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
