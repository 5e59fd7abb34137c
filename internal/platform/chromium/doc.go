// Package chromium drives a real Chromium page through the DevTools protocol
// using go-rod. It registers itself as the "chromium" backend.
package chromium
