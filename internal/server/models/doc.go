// Package models defines the backend's persisted entities and the JSON shapes
// the REST API exchanges with the console.
package models
