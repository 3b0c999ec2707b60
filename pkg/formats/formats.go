// Package formats reads and writes the mesh files roads are built from and
// exported to.
package formats

// Note: Wavefront OBJ is implemented in obj.go
