// Package utils provides shared utility functions and constants
package utils

// ContextKeyPresenter is the key used to store the session's toast presenter in the echo context
const ContextKeyPresenter = "presenter"

// ContextKeySessionID is the key used to store the session id in the echo context
const ContextKeySessionID = "session_id"

// CookieName is the name of the session cookie
const CookieName = "NewsDesk"
