// Package todoist provides a minimal client for the Todoist REST v2 API.
//
// Each method issues exactly one authenticated HTTPS request with a fixed
// 30-second timeout and no retries. Responses are decoded into dynamic
// Entity values that preserve every key the API returns, so unknown fields
// survive round trips into JSON output untouched.
//
// The API token is resolved from the TODOIST_API_TOKEN environment variable
// on every request. Failures are reported through a small typed taxonomy
// (ConfigError, HTTPError, DecodeError, timeouts via IsTimeout) that the tool
// layer maps onto user-facing messages.
package todoist
