// Package ccraster synthesizes conservative-raster coverage geometry for
// GPU path antialiasing.
//
// # Overview
//
// ccraster renders antialiased convex polygons (triangles and 3/4-point
// curve hulls) without per-pixel analytic coverage computation. Instead of
// evaluating coverage in the fragment stage, it draws a "bloated" version
// of each shape, a conservative raster that touches every pixel the shape
// touches even partially, and attaches a linear coverage ramp to the bloat
// band so edges and corners come out smooth.
//
// The heavy lifting happens once per process: two small static meshes
// (one for triangles, one for 4-point hulls) encode, per vertex, everything
// a vertex shader needs to reconstruct its bloat direction and coverage
// contribution from the instance's points alone. Drawing N polygons is then
// a single indexed, instanced draw over the static mesh.
//
// # Quick Start
//
//	cfg, err := ccraster.NewPassConfig(
//	    ccraster.PrimitiveTriangles, ccraster.WindCrossProduct, caps)
//	if err != nil {
//	    return err
//	}
//
//	// One record per polygon to draw.
//	inst := ccraster.MakeTriPointInstance(p0, p1, p2)
//
//	desc := cfg.Draw(1, 0) // 1 instance, base instance 0
//
// The gpu subpackage wires configurations to a gogpu/wgpu HAL device:
// static vertex/index buffers are uploaded once through a content-keyed
// cache, and the expansion algorithm runs as a generated WGSL vertex
// shader.
//
// # Architecture
//
// The library is organized into:
//   - Public API: VertexData, Mesh, PassConfig, instance records,
//     ExpandVertex (CPU reference expansion)
//   - cache: sharded content-keyed buffer cache
//   - gpu: HAL pipelines, static buffer upload, draw recording (the
//     device is handed in by the host)
//
// # Coordinate System
//
// All geometry is in device space: origin at top-left, X increases right,
// Y increases down. The bloat radius is half a pixel (0.5 device units).
package ccraster

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
