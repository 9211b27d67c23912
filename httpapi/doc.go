// Package httpapi is a thin HTTP adapter over the pipeline.
package httpapi
