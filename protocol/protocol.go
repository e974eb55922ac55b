// package protocol defines constants shared by the server and the browser
// screen.
package protocol

const (
	// Version changes whenever a snapshot or event changes shape.  A page that
	// sees a different version than it was served with reloads itself.
	Version = 1
)
