// Package runs holds the run-history model: every verbose computation served
// over the API is stored with its status, step count and full JSON trace.
package runs
