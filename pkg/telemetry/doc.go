// Package telemetry decodes downlink frames and hands the decoded
// messages to sinks. Handlers are observational only.
package telemetry
