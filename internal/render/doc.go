// Package render maps a parsed Document to a render tree and writes the
// reader view.
//
// ToRenderTree is a pure one-node-per-block mapping. WriteHTML serializes the
// tree to reader markup, Display reads back what a rendered code node shows,
// and CopyButton implements the copy-to-clipboard affordance on top of a
// primary and a legacy Clipboard.
package render
