// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// PointsVertexShader sizes each point by distance to the camera.
//
//go:embed points.vert
var PointsVertexShader string

// PointsFragmentShader shapes points with an alpha sprite.
//
//go:embed points.frag
var PointsFragmentShader string

// MeshVertexShader transforms textured meshes.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader shades meshes unlit or with ambient plus one point light.
//
//go:embed mesh.frag
var MeshFragmentShader string
