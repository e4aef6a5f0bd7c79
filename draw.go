package ccraster

import "github.com/gogpu/gputypes"

// DrawDescriptor describes one indexed, instanced draw of a configured
// pass: the whole static mesh once per instance record. The core emits
// descriptors; issuing GPU commands is the submission layer's job
// (see the gpu subpackage).
type DrawDescriptor struct {
	// Topology matches the configuration's index encoding.
	Topology gputypes.PrimitiveTopology

	// IndexCount is the number of indices drawn per instance.
	IndexCount int

	// InstanceCount is the number of instance records to draw.
	InstanceCount int

	// BaseInstance offsets into the bound instance buffer, letting one
	// buffer serve several draws.
	BaseInstance int
}

// Draw emits the descriptor for drawing instanceCount records starting at
// baseInstance in the bound instance buffer. Drawing has no failure paths;
// degenerate geometry produces zero-area triangles, not errors.
func (c *PassConfig) Draw(instanceCount, baseInstance int) DrawDescriptor {
	return DrawDescriptor{
		Topology:      c.topology,
		IndexCount:    c.IndicesPerInstance(),
		InstanceCount: instanceCount,
		BaseInstance:  baseInstance,
	}
}
