package common

// AuthorizationHeaderName carries the bearer credential on REST requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

// AdminActorID is the actor recorded in audit entries when none is configured.
const AdminActorID = "Admin"
