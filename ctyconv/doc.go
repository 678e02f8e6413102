// Package ctyconv bridges cty values and regraft node graphs. It is the
// usual entry point for configuration-shaped data: decode a document into
// a cty.Value, convert it to a node graph, apply updates, and convert the
// result back.
//
// cty values carry no reference identity, so FromValue always produces a
// tree; sharing is something callers introduce afterwards by assembling
// graphs from converted pieces.
package ctyconv
