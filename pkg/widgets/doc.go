// Package widgets defines the seam between the render engine and concrete
// control implementations. Backends register a Constructor under a name; the
// Registry remembers which backend is active and hands its constructor to
// dispatch sessions through the Resolver interface.
package widgets
