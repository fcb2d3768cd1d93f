// Package lib groups supporting code that is not a request layer, such as
// the asynq background jobs.
package lib
