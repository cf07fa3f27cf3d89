// Package proto holds the Go packages generated from the protocol buffer
// definitions under proto/.
package proto

//go:generate protoc -I ../../proto --go_out=paths=source_relative:. picker/l1/v1/messages.proto
