// Package lib groups modules that do not fit strictly into other layers:
// background job processing (Asynq over Redis), approval emails (Resend),
// dependency health monitoring and host network introspection.
package lib
