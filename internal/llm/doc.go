// Package llm talks to OpenAI-compatible chat-completion endpoints.
// Groq and OpenAI are supported; requests carry a bearer key, are rate
// limited per client, and treat anything but HTTP 200 as a failure.
package llm
