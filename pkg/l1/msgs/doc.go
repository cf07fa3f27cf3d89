// Package msgs provides the messages exchanged with remote controllers
// over MQTT. Messages are encoded as protocol buffers.
package msgs

// Commands are published by remote controllers to <device-id>/cmd and
// forwarded to the device as packets.
//
// Producer: remote controller
// Consumer: bridge
//
// Status are published by the bridge to <device-id>/status for every
// status line the device reports, and as replies of TIME commands.
//
// Producer: bridge
// Consumer: remote controller
