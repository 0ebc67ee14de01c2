// Package plugins hosts admission rule plugin subpackages. It contains no
// runtime code of its own; the architecture guard below keeps every plugin on
// the core facade instead of the domain package.
package plugins
