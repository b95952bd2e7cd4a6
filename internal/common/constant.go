package common

// AuthorizationHeaderName carries the wallet session token as
// "Bearer <token>" on mutating requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName is echoed back on every response.
const RequestIDHeaderName = "X-Request-Id"
